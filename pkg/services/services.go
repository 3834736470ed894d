package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hashicorp/go-multierror"
)

type Service interface {
	Name() string
	Start(ctx context.Context) error
}

type Group []Service

// Start runs every service in the group and blocks until all of them
// return. The first service to stop cancels the rest; individual errors
// are aggregated into one.
func (g Group) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	errCh := make(chan error, len(g))

	for _, svc := range g {
		wg.Add(1)
		go func(svc Service) {
			defer wg.Done()
			defer cancel()

			slog.Info("starting service", "name", svc.Name())
			if err := svc.Start(ctx); err != nil {
				errCh <- fmt.Errorf("%s: %w", svc.Name(), err)
			}
			slog.Info("service stopped", "name", svc.Name())
		}(svc)
	}

	wg.Wait()
	close(errCh)

	var result *multierror.Error
	for err := range errCh {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}
