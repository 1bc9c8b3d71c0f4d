package telemetry

import (
	"context"

	"github.com/hrapi/backend/internal/domain/hr"
	"github.com/hrapi/backend/internal/domain/tenancy"
	"go.opentelemetry.io/otel/metric"
)

// TenancyMetrics counts tenant resolution, strategy selection and leave
// lifecycle transitions
type TenancyMetrics struct {
	cacheLookups     *Counter
	resolutions      *Counter
	strategySelected *Counter
	leaveTransitions *Counter
}

// NewTenancyMetrics registers the tenancy instruments on meter
func NewTenancyMetrics(meter metric.Meter) (*TenancyMetrics, error) {
	m := &TenancyMetrics{}
	var err error

	if m.cacheLookups, err = NewCounter(meter,
		"tenant_cache_lookup_total",
		"Tenant registry cache lookups by lookup kind and result",
		"{lookup}",
	); err != nil {
		return nil, err
	}
	if m.resolutions, err = NewCounter(meter,
		"tenant_resolution_total",
		"Requests by the signal that identified the tenant",
		"{request}",
	); err != nil {
		return nil, err
	}
	if m.strategySelected, err = NewCounter(meter,
		"strategy_selection_total",
		"Customization strategy selections by strategy name",
		"{selection}",
	); err != nil {
		return nil, err
	}
	if m.leaveTransitions, err = NewCounter(meter,
		"leave_transition_total",
		"Leave request status transitions",
		"{transition}",
	); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordCacheHit counts a registry cache hit
func (m *TenancyMetrics) RecordCacheHit(ctx context.Context, lookup string) {
	m.cacheLookups.Inc(ctx, AttrLookup.String(lookup), AttrResult.String("hit"))
}

// RecordCacheMiss counts a registry cache miss
func (m *TenancyMetrics) RecordCacheMiss(ctx context.Context, lookup string) {
	m.cacheLookups.Inc(ctx, AttrLookup.String(lookup), AttrResult.String("miss"))
}

// RecordResolution counts which signal resolved the tenant
func (m *TenancyMetrics) RecordResolution(ctx context.Context, source string) {
	m.resolutions.Inc(ctx, AttrSource.String(source))
}

// RecordStrategySelection counts a strategy selection
func (m *TenancyMetrics) RecordStrategySelection(ctx context.Context, strategy string) {
	m.strategySelected.Inc(ctx, AttrStrategy.String(strategy))
}

// RecordLeaveTransition counts a leave request status change
func (m *TenancyMetrics) RecordLeaveTransition(ctx context.Context, from, to hr.LeaveStatus) {
	m.leaveTransitions.Inc(ctx, AttrFromStatus.String(from.String()), AttrToStatus.String(to.String()))
}

// InstrumentedSelector counts the strategies chosen by the wrapped selector
type InstrumentedSelector struct {
	next    tenancy.StrategySelector
	metrics *TenancyMetrics
}

// NewInstrumentedSelector wraps next
func NewInstrumentedSelector(next tenancy.StrategySelector, metrics *TenancyMetrics) *InstrumentedSelector {
	return &InstrumentedSelector{next: next, metrics: metrics}
}

// SelectStrategy implements tenancy.StrategySelector
func (s *InstrumentedSelector) SelectStrategy(cfg tenancy.TenantConfiguration) tenancy.CustomizationStrategy {
	strategy := s.next.SelectStrategy(cfg)
	if s.metrics != nil && strategy != nil {
		s.metrics.RecordStrategySelection(context.Background(), strategy.Name())
	}
	return strategy
}

var _ tenancy.StrategySelector = (*InstrumentedSelector)(nil)
