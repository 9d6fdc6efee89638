/*
 * metrics.go, part of siesta-sfl.
 *
 * Copyright 2026 The siesta-sfl authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package run

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

//Metrics contains the prometheus collectors updated by a Driver.
type Metrics struct {
	Sweeps     prometheus.Counter
	MaxForce   prometheus.Gauge
	Converged  prometheus.Gauge
	Energy     *prometheus.GaugeVec //labeled by image index
	Evaluation prometheus.Histogram //seconds per image evaluation
}

//NewMetrics creates the collectors and registers them in reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	M := &Metrics{
		Sweeps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "neb",
			Name:      "sweeps_total",
			Help:      "Number of completed sweeps over the interior images.",
		}),
		MaxForce: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "neb",
			Name:      "max_force",
			Help:      "Largest per-atom norm of the NEB forces in the last sweep.",
		}),
		Converged: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "neb",
			Name:      "converged_images",
			Help:      "Number of interior images whose optimizer has converged.",
		}),
		Energy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "neb",
			Name:      "image_energy",
			Help:      "Last energy of each image.",
		}, []string{"image"}),
		Evaluation: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "neb",
			Name:      "evaluation_seconds",
			Help:      "Time spent evaluating the energy and forces of one image.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 12),
		}),
	}
	for _, c := range []prometheus.Collector{M.Sweeps, M.MaxForce, M.Converged, M.Energy, M.Evaluation} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return M, nil
}

func (M *Metrics) energy(i int, e float64) {
	if M == nil {
		return
	}
	M.Energy.WithLabelValues(strconv.Itoa(i)).Set(e)
}

func (M *Metrics) evaluation(seconds float64) {
	if M == nil {
		return
	}
	M.Evaluation.Observe(seconds)
}

func (M *Metrics) sweep(maxForce float64, converged int) {
	if M == nil {
		return
	}
	M.Sweeps.Inc()
	M.MaxForce.Set(maxForce)
	M.Converged.Set(float64(converged))
}
