package experiment

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Compare runs the same problem through each method concurrently, every
// method on its own trace. Results follow the order of methods; with no
// methods given, all registered integrators are compared.
func Compare(ctx context.Context, reg *Registry, cfg Config, methods ...string) ([]*Result, error) {
	if len(methods) == 0 {
		methods = reg.ListIntegrators()
	}

	results := make([]*Result, len(methods))
	g, gctx := errgroup.WithContext(ctx)

	for i, method := range methods {
		g.Go(func() error {
			c := cfg
			c.Method = method

			exp := New(c)
			if err := exp.Setup(reg); err != nil {
				return fmt.Errorf("%s: %w", method, err)
			}
			res, err := exp.Run(gctx)
			results[i] = res
			if err != nil {
				return fmt.Errorf("%s: %w", method, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
