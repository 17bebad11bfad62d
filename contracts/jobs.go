package contracts

import "time"

// ImageJob is one input image and the path its framed version goes to.
type ImageJob struct {
	Input  string
	Output string
}

// JobResult is the outcome of one ImageJob.
type JobResult struct {
	Job     ImageJob
	Summary string
	Warning error
	Err     error
	Elapsed time.Duration
}
