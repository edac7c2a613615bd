package service

import (
	"github.com/deppfellow/bookshelf/internal/lib/job"
	"github.com/deppfellow/bookshelf/internal/repository"
	"github.com/deppfellow/bookshelf/internal/server"
)

type Services struct {
	Book *BookService
	Job  *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var events BookEventPublisher
	if s.Job != nil {
		events = s.Job
	}

	return &Services{
		Book: NewBookService(repos.Book, events, s.Logger),
		Job:  s.Job,
	}, nil
}
