package armspec

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/roach88/armkin/internal/kinematics"
)

//go:embed schema.cue
var schemaCUE string

// LoadMode controls how errors are handled during spec loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// Spec is one named arm compiled from CUE.
type Spec struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	L1          float64                 `json:"l1"`
	L2          float64                 `json:"l2"`
	Home        *kinematics.JointAngles `json:"home,omitempty"`

	Arm kinematics.Arm `json:"-"`
}

// HomeOrReference returns the declared home pose, or the reference angles.
func (s Spec) HomeOrReference() kinematics.JointAngles {
	if s.Home != nil {
		return *s.Home
	}
	return kinematics.ReferenceAngles
}

// LoadResult contains the arms compiled from a file or directory.
type LoadResult struct {
	Specs     []Spec
	CUEValue  cue.Value // The schema-unified value
	FileCount int
}

// armDef mirrors #Arm in schema.cue.
type armDef struct {
	L1          float64                 `json:"l1"`
	L2          float64                 `json:"l2"`
	Description string                  `json:"description"`
	Home        *kinematics.JointAngles `json:"home"`
}

// Load reads arm specs from a .cue file or a directory of .cue files.
// If mode is LoadModeFailFast, returns on the first invalid arm.
// If mode is LoadModeCollectAll, every invalid arm is reported.
func Load(path string, mode LoadMode) (*LoadResult, []error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("spec path not found: %s", path)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing spec path: %v", err)}}
	}

	ctx := cuecontext.New()

	var value cue.Value
	fileCount := 1
	if info.IsDir() {
		files, err := FindCUEFiles(path)
		if err != nil {
			return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
		}
		if len(files) == 0 {
			return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", path)}}
		}
		fileCount = len(files)

		instances := load.Instances([]string{"."}, &load.Config{Dir: path})
		if len(instances) == 0 {
			return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
		}
		inst := instances[0]
		if inst.Err != nil {
			return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
		}
		value = ctx.BuildInstance(inst)
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("reading spec file: %v", err)}}
		}
		value = ctx.CompileBytes(data, cue.Filename(path))
	}

	if err := value.Err(); err != nil {
		return nil, []error{fromCUEError(err, ErrCodeBuildFailed)}
	}

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("compiling schema: %v", err)}}
	}
	value = value.Unify(schema)

	result := &LoadResult{CUEValue: value, FileCount: fileCount}
	specs, errs := compileArms(value, mode)
	result.Specs = specs

	if len(result.Specs) == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeNoArms, Message: fmt.Sprintf("no arms defined in %s", path)})
	}

	return result, errs
}

// compileArms converts every field of arm into a Spec.
func compileArms(value cue.Value, mode LoadMode) ([]Spec, []error) {
	armsVal := value.LookupPath(cue.ParsePath("arm"))
	if !armsVal.Exists() {
		return nil, nil
	}

	iter, err := armsVal.Fields()
	if err != nil {
		return nil, []error{fromCUEError(err, ErrCodeGeneric)}
	}

	var (
		specs []Spec
		errs  []error
	)
	for iter.Next() {
		spec, err := CompileArm(iter.Label(), iter.Value())
		if err != nil {
			errs = append(errs, err)
			if mode == LoadModeFailFast {
				return specs, errs
			}
			continue
		}
		specs = append(specs, *spec)
	}
	return specs, errs
}

// CompileArm validates a single #Arm value and builds its Spec.
func CompileArm(name string, v cue.Value) (*Spec, error) {
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fromCUEError(err, ErrCodeInvalidField)
	}

	var def armDef
	if err := v.Decode(&def); err != nil {
		return nil, fromCUEError(err, ErrCodeInvalidField)
	}

	arm, err := kinematics.NewArm(def.L1, def.L2)
	if err != nil {
		return nil, &LoadError{
			Code:    ErrCodeInvalidLength,
			Message: fmt.Sprintf("arm %s: %v", name, err),
			Pos:     v.Pos(),
		}
	}

	return &Spec{
		Name:        name,
		Description: def.Description,
		L1:          def.L1,
		L2:          def.L2,
		Home:        def.Home,
		Arm:         arm,
	}, nil
}

// Select returns the spec called name. An empty name selects the only spec
// when exactly one is defined.
func Select(specs []Spec, name string) (Spec, error) {
	if name == "" {
		if len(specs) == 1 {
			return specs[0], nil
		}
		return Spec{}, &LoadError{
			Code:    ErrCodeUnknownArm,
			Message: fmt.Sprintf("%d arms defined, select one by name", len(specs)),
		}
	}
	for _, s := range specs {
		if s.Name == name {
			return s, nil
		}
	}
	return Spec{}, &LoadError{Code: ErrCodeUnknownArm, Message: fmt.Sprintf("arm %q not defined", name)}
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
