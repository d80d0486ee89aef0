package adapters

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsClientAdapter decorates a ClientAdapter with Prometheus counters.
type MetricsClientAdapter struct {
	next    ClientAdapter
	calls   *prometheus.CounterVec
	revenue prometheus.Counter
}

var _ ClientAdapter = (*MetricsClientAdapter)(nil)

// NewMetricsClientAdapter wraps next and registers its collectors with reg.
// A nil reg registers with prometheus.DefaultRegisterer.
func NewMetricsClientAdapter(next ClientAdapter, reg prometheus.Registerer) (*MetricsClientAdapter, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &MetricsClientAdapter{
		next: next,
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "localytics",
			Name:      "vendor_calls_total",
			Help:      "Vendor client calls issued by the integration, by method.",
		}, []string{"method"}),
		revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "localytics",
			Name:      "revenue_cents_total",
			Help:      "Revenue in cents attached to tagged events.",
		}),
	}
	if err := reg.Register(m.calls); err != nil {
		return nil, err
	}
	if err := reg.Register(m.revenue); err != nil {
		reg.Unregister(m.calls)
		return nil, err
	}
	return m, nil
}

func (m *MetricsClientAdapter) inc(method string) {
	m.calls.WithLabelValues(method).Inc()
}

func (m *MetricsClientAdapter) SetLoggingEnabled(enabled bool) {
	m.inc(MethodSetLoggingEnabled)
	m.next.SetLoggingEnabled(enabled)
}

func (m *MetricsClientAdapter) Integrate(app Application, appKey string) {
	m.inc(MethodIntegrate)
	m.next.Integrate(app, appKey)
}

func (m *MetricsClientAdapter) OpenSession() {
	m.inc(MethodOpenSession)
	m.next.OpenSession()
}

func (m *MetricsClientAdapter) CloseSession() {
	m.inc(MethodCloseSession)
	m.next.CloseSession()
}

func (m *MetricsClientAdapter) Upload() {
	m.inc(MethodUpload)
	m.next.Upload()
}

func (m *MetricsClientAdapter) SetLocation(location Location) {
	m.inc(MethodSetLocation)
	m.next.SetLocation(location)
}

func (m *MetricsClientAdapter) SetCustomerID(id string) {
	m.inc(MethodSetCustomerID)
	m.next.SetCustomerID(id)
}

func (m *MetricsClientAdapter) SetCustomerEmail(email string) {
	m.inc(MethodSetCustomerEmail)
	m.next.SetCustomerEmail(email)
}

func (m *MetricsClientAdapter) SetCustomerFullName(name string) {
	m.inc(MethodSetCustomerFullName)
	m.next.SetCustomerFullName(name)
}

func (m *MetricsClientAdapter) SetCustomerFirstName(name string) {
	m.inc(MethodSetCustomerFirstName)
	m.next.SetCustomerFirstName(name)
}

func (m *MetricsClientAdapter) SetCustomerLastName(name string) {
	m.inc(MethodSetCustomerLastName)
	m.next.SetCustomerLastName(name)
}

func (m *MetricsClientAdapter) SetIdentifier(key, value string) {
	m.inc(MethodSetIdentifier)
	m.next.SetIdentifier(key, value)
}

func (m *MetricsClientAdapter) SetProfileAttribute(key, value string, scope ProfileScope) {
	m.inc(MethodSetProfileAttribute)
	m.next.SetProfileAttribute(key, value, scope)
}

func (m *MetricsClientAdapter) SetCustomDimension(dimension int, value string) {
	m.inc(MethodSetCustomDimension)
	m.next.SetCustomDimension(dimension, value)
}

func (m *MetricsClientAdapter) TagScreen(name string) {
	m.inc(MethodTagScreen)
	m.next.TagScreen(name)
}

func (m *MetricsClientAdapter) TagEvent(name string, attributes map[string]string) {
	m.inc(MethodTagEvent)
	m.next.TagEvent(name, attributes)
}

func (m *MetricsClientAdapter) TagEventWithRevenue(name string, attributes map[string]string, revenue int64) {
	m.inc(MethodTagEventWithRevenue)
	if revenue > 0 {
		m.revenue.Add(float64(revenue))
	}
	m.next.TagEventWithRevenue(name, attributes, revenue)
}

func (m *MetricsClientAdapter) HandleTestMode(intent *Intent) {
	m.inc(MethodHandleTestMode)
	m.next.HandleTestMode(intent)
}
