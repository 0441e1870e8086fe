// Package batch evaluates many forward and inverse kinematics requests
// concurrently against one arm.
package batch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/roach88/armkin/internal/kinematics"
)

// Kind names the kinematics direction of a job.
type Kind string

const (
	KindForward Kind = "forward"
	KindInverse Kind = "inverse"
)

// Job is a single request. Angles is set for forward jobs, Target for inverse jobs.
type Job struct {
	Kind   Kind
	Angles kinematics.JointAngles
	Target kinematics.Point2D
}

// Outcome case names.
const (
	CasePose        = "pose"
	CaseReachable   = "reachable"
	CaseUnreachable = "unreachable"
)

// Outcome is the result of one job, in the same position as the job.
type Outcome struct {
	Index  int                     `json:"index"`
	Kind   Kind                    `json:"kind"`
	Case   string                  `json:"case"`
	Input  any                     `json:"input"`
	Pose   *kinematics.Pose        `json:"pose,omitempty"`
	Angles *kinematics.JointAngles `json:"angles,omitempty"`
	// Distance is set for unreachable targets.
	Distance *float64 `json:"distance,omitempty"`
}

// Evaluate runs a single job synchronously.
func Evaluate(arm kinematics.Arm, index int, job Job) Outcome {
	out := Outcome{Index: index, Kind: job.Kind}
	switch job.Kind {
	case KindForward:
		pose := arm.Forward(job.Angles)
		out.Input = job.Angles
		out.Case = CasePose
		out.Pose = &pose
	case KindInverse:
		out.Input = job.Target
		switch s := arm.Inverse(job.Target).(type) {
		case kinematics.Reachable:
			angles := s.Angles
			out.Case = CaseReachable
			out.Angles = &angles
		case kinematics.Unreachable:
			out.Case = CaseUnreachable
			d := s.Distance
			out.Distance = &d
		}
	}
	return out
}

// Run evaluates jobs with at most workers goroutines (GOMAXPROCS when
// workers <= 0). Outcomes are returned in job order. If ctx is cancelled
// before all jobs are scheduled, Run returns ctx.Err().
func Run(ctx context.Context, arm kinematics.Arm, jobs []Job, workers int) ([]Outcome, error) {
	for i, job := range jobs {
		if job.Kind != KindForward && job.Kind != KindInverse {
			return nil, fmt.Errorf("job %d: unknown kind %q", i, job.Kind)
		}
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	outcomes := make([]Outcome, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = Evaluate(arm, i, job)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// File is the YAML jobs document.
//
//	forward:
//	  - {theta1: 40, theta2: 30}
//	inverse:
//	  - {x: 35.13, y: 55.59}
type File struct {
	Forward []kinematics.JointAngles `yaml:"forward"`
	Inverse []kinematics.Point2D     `yaml:"inverse"`
}

// Jobs flattens the file into forward jobs followed by inverse jobs.
func (f *File) Jobs() []Job {
	jobs := make([]Job, 0, len(f.Forward)+len(f.Inverse))
	for _, a := range f.Forward {
		jobs = append(jobs, Job{Kind: KindForward, Angles: a})
	}
	for _, p := range f.Inverse {
		jobs = append(jobs, Job{Kind: KindInverse, Target: p})
	}
	return jobs
}

// LoadFile reads a jobs file, rejecting unknown fields.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read jobs file: %w", err)
	}

	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(f.Forward) == 0 && len(f.Inverse) == 0 {
		return nil, fmt.Errorf("jobs file %s has no forward or inverse entries", path)
	}
	return &f, nil
}
