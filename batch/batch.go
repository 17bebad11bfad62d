package batch

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"imgframe/contracts"
	"imgframe/files_manager"
)

// Task frames one job. The returned FrameResult only contributes its
// summary and warning to the JobResult.
type Task func(job contracts.ImageJob) (*contracts.FrameResult, error)

// PlanJobs expands input into jobs. A file input yields a single job
// writing to output. A directory input yields one job per image in it,
// written into the output directory with extension ext (empty keeps the
// input extension). No job ever writes over its own input or over another
// job's output.
func PlanJobs(input, output, ext string) ([]contracts.ImageJob, error) {
	isDir, err := files_manager.CheckInput(input)
	if err != nil {
		return nil, err
	}
	if !isDir {
		if files_manager.SamePath(input, output) {
			return nil, fmt.Errorf("output %s would overwrite the input", output)
		}
		return []contracts.ImageJob{{Input: input, Output: output}}, nil
	}
	if err := files_manager.CheckProvidedDirs(input, output); err != nil {
		return nil, err
	}

	paths, err := files_manager.GetImagePaths(input)
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", input, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no images found in %s", input)
	}
	if err := os.MkdirAll(output, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	jobs := make([]contracts.ImageJob, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		out := files_manager.OutputPath(output, p, ext)
		if prev, ok := seen[out]; ok {
			return nil, fmt.Errorf("%s and %s would both be written to %s", prev, p, out)
		}
		seen[out] = p
		jobs = append(jobs, contracts.ImageJob{Input: p, Output: out})
	}
	return jobs, nil
}

// Run executes task for every job with at most workers running at once.
// Results are returned in job order.
func Run(jobs []contracts.ImageJob, workers int, task Task) []contracts.JobResult {
	results := make([]contracts.JobResult, len(jobs))
	if workers < 1 {
		workers = 1
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, job := range jobs {
		wg.Add(1)
		go func(i int, job contracts.ImageJob) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			start := time.Now()
			res, err := task(job)
			results[i] = contracts.JobResult{Job: job, Err: err, Elapsed: time.Since(start)}
			if res != nil {
				results[i].Summary = res.Summary
				results[i].Warning = res.Warning
			}
			logJob(results[i])
		}(i, job)
	}
	wg.Wait()
	return results
}

// Failed counts the results that carry an error.
func Failed(results []contracts.JobResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

func logJob(r contracts.JobResult) {
	entry := logrus.WithFields(logrus.Fields{
		"input":   r.Job.Input,
		"output":  r.Job.Output,
		"elapsed": r.Elapsed.Round(time.Millisecond),
	})
	switch {
	case r.Err != nil:
		entry.Errorf("failed: %v", r.Err)
	case r.Warning != nil:
		entry.Warnf("%s: %v", r.Summary, r.Warning)
	default:
		entry.Debug(r.Summary)
	}
}
