package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"todo/internal/model"
)

// Recorder counts todo domain events. It satisfies service.Notifier.
type Recorder struct {
	completed   prometheus.Counter
	softDeletes *prometheus.CounterVec
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		completed: factory.NewCounter(prometheus.CounterOpts{
			Name: "todo_items_completed_total",
			Help: "Items that went from pending to done.",
		}),
		softDeletes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "todo_soft_deletes_total",
			Help: "Rows flagged as deleted, by entity.",
		}, []string{"entity"}),
	}
}

func (r *Recorder) ItemCompleted(_ context.Context, _ model.ItemCompleted) {
	r.completed.Inc()
}

func (r *Recorder) SoftDeleted(_ context.Context, entity string, count int) {
	r.softDeletes.WithLabelValues(entity).Add(float64(count))
}
