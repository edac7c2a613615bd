// Package lib holds supporting modules that do not belong to a layer,
// currently the asynq background jobs under lib/job.
package lib
