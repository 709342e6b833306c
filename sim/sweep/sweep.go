// Package sweep runs independent simulations over a range of server counts
// concurrently and reports the smallest staffing level that is not a bottleneck.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"

	"github.com/mediflow/mediflow-sim/sim"
)

// Point is the outcome of one server count.
type Point struct {
	Servers int            `json:"servers"`
	Metrics sim.RunMetrics `json:"metrics"`
}

// Report holds all points ordered by server count.
type Report struct {
	Base   sim.SimulationParameters `json:"base"`
	Seed   int64                    `json:"seed"`
	Points []Point                  `json:"points"`
	// Recommended is the smallest server count classified healthy or moderate (0 if none).
	Recommended int `json:"recommended_servers"`
}

// Run simulates base once per server count in r on a worker pool. Every run uses
// the same seed, so all points see the same arrival stream. Each run builds its
// own Simulator; nothing is shared between workers except the result slots.
func Run(ctx context.Context, base sim.SimulationParameters, r sim.SweepRange) (*Report, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := base.WithServers(r.MinServers).Validate(); err != nil {
		return nil, err
	}

	seed := time.Now().UnixNano()
	if base.Seed != nil {
		seed = *base.Seed
	}
	base.Seed = &seed

	n := r.MaxServers - r.MinServers + 1
	workers := r.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, n)

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("creating sweep pool: %w", err)
	}
	defer pool.Release()

	logrus.Infof("Sweeping servers %d..%d with %d workers (seed=%d)", r.MinServers, r.MaxServers, workers, seed)

	points := make([]Point, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			errs[i] = ctx.Err()
			continue
		}
		servers := r.MinServers + i
		idx := i
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			points[idx], errs[idx] = runPoint(ctx, base.WithServers(servers))
		})
		if submitErr != nil {
			wg.Done()
			errs[idx] = fmt.Errorf("submitting servers=%d: %w", servers, submitErr)
		}
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	report := &Report{Base: base, Seed: seed, Points: points}
	for _, p := range points {
		if p.Metrics.BottleneckLevel <= sim.LevelModerate {
			report.Recommended = p.Servers
			break
		}
	}
	return report, nil
}

func runPoint(ctx context.Context, params sim.SimulationParameters) (p Point, err error) {
	if ctx.Err() != nil {
		return Point{}, ctx.Err()
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("servers=%d: simulation aborted: %v", params.Servers, rec)
		}
	}()
	res, err := sim.RunSimulation(params)
	if err != nil {
		return Point{}, fmt.Errorf("servers=%d: %w", params.Servers, err)
	}
	logrus.Debugf("Sweep point servers=%d: utilization=%.3f level=%s", params.Servers, res.Metrics.Utilization, res.Metrics.BottleneckLevel)
	return Point{Servers: params.Servers, Metrics: res.Metrics}, nil
}
