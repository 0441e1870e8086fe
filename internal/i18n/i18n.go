// Package i18n holds the message catalog for user-facing CLI text.
//
// Keys are the English format strings. Indonesian translations are
// registered at init; any other supported language falls back to English.
package i18n

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys. Numeric arguments are passed pre-formatted as strings
// (see Num and Fixed) so only the wording is localized.
const (
	MsgArmHeader     = "L1=%s, L2=%s, DoF=%d\n"
	MsgGivenAngles   = "Given: θ1=%s°, θ2=%s°\n"
	MsgModePrompt    = "FK/IK? "
	MsgEndEffector   = "End Effector: (%s, %s)\n"
	MsgJoint1        = "Joint 1: (%s, %s)\n"
	MsgTargetX       = "Target X: "
	MsgTargetY       = "Target Y: "
	MsgAngles        = "θ1=%s°, θ2=%s°\n"
	MsgUnreachable   = "unreachable"
	MsgInvalidInput  = "invalid input"
	MsgInvalidNumber = "invalid number %q"
	MsgPlotWritten   = "Wrote plot to %s\n"
)

var translations = map[language.Tag]map[string]string{
	language.Indonesian: {
		MsgGivenAngles:   "Diketahui: θ1=%s°, θ2=%s°\n",
		MsgEndEffector:   "End Effector: (%s, %s)\n",
		MsgJoint1:        "Sendi 1: (%s, %s)\n",
		MsgUnreachable:   "tidak bisa dijangkau",
		MsgInvalidInput:  "Input tidak valid",
		MsgInvalidNumber: "angka tidak valid %q",
		MsgPlotWritten:   "Plot ditulis ke %s\n",
	},
}

// Supported lists the accepted language codes.
var Supported = []string{"en", "id"}

func init() {
	for tag, msgs := range translations {
		for key, msg := range msgs {
			if err := message.SetString(tag, key, msg); err != nil {
				panic(fmt.Sprintf("i18n: registering %q for %s: %v", key, tag, err))
			}
		}
	}
}

// Num formats v in its shortest form with a dot decimal separator.
func Num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Fixed formats v with two decimals and a dot decimal separator.
func Fixed(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Printer returns a printer for the language code (en or id).
func Printer(lang string) (*message.Printer, error) {
	tag, err := Parse(lang)
	if err != nil {
		return nil, err
	}
	return message.NewPrinter(tag), nil
}

// Parse validates a language code.
func Parse(lang string) (language.Tag, error) {
	switch lang {
	case "", "en":
		return language.English, nil
	case "id":
		return language.Indonesian, nil
	default:
		return language.Und, fmt.Errorf("unsupported language %q: must be one of %v", lang, Supported)
	}
}
