// Package metrics exports queue-level gauges as a prometheus.Collector,
// following the scrape-on-demand shape of a Redis exporter: each Collect
// call re-reads every queue's attributes fresh rather than caching between
// scrapes.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/julesChu12/rsmq"
)

// QueueAttributesSource is the subset of rsmq.Client[T] the collector
// needs. Any instantiation of Client satisfies it, since neither method
// depends on the payload type parameter.
type QueueAttributesSource interface {
	ListQueues(ctx context.Context) ([]string, error)
	GetQueueAttributes(ctx context.Context, qname string) (*rsmq.QueueAttributes, error)
}

// Options configures the collector's metric namespace and scrape timeout.
type Options struct {
	Namespace string
	Timeout   time.Duration
}

// Collector implements prometheus.Collector over a QueueAttributesSource.
// Register it with a prometheus.Registry and it refreshes on every scrape.
type Collector struct {
	source  QueueAttributesSource
	timeout time.Duration

	totalScrapes   prometheus.Counter
	scrapeErrors   prometheus.Counter
	scrapeDuration prometheus.Summary

	messages       *prometheus.Desc
	hiddenMessages *prometheus.Desc
	totalSent      *prometheus.Desc
	totalReceived  *prometheus.Desc
	visibility     *prometheus.Desc
	delay          *prometheus.Desc
}

// NewCollector builds a Collector over source. A zero Options.Timeout
// defaults to 5 seconds.
func NewCollector(source QueueAttributesSource, opts Options) *Collector {
	ns := opts.Namespace
	if ns == "" {
		ns = "rsmq"
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	return &Collector{
		source:  source,
		timeout: timeout,

		totalScrapes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "exporter_scrapes_total",
			Help:      "Total number of times queue attributes were scraped.",
		}),
		scrapeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "exporter_scrape_errors_total",
			Help:      "Total number of scrapes that failed to list or read a queue.",
		}),
		scrapeDuration: prometheus.NewSummary(prometheus.SummaryOpts{
			Namespace: ns,
			Name:      "exporter_scrape_duration_seconds",
			Help:      "Time taken to complete one full scrape of every queue.",
		}),

		messages: prometheus.NewDesc(
			prometheus.BuildFQName(ns, "queue", "messages"),
			"Number of messages currently in the queue, visible or hidden.",
			[]string{"queue"}, nil,
		),
		hiddenMessages: prometheus.NewDesc(
			prometheus.BuildFQName(ns, "queue", "hidden_messages"),
			"Number of messages currently hidden or delayed.",
			[]string{"queue"}, nil,
		),
		totalSent: prometheus.NewDesc(
			prometheus.BuildFQName(ns, "queue", "sent_total"),
			"Monotonic count of messages sent to the queue.",
			[]string{"queue"}, nil,
		),
		totalReceived: prometheus.NewDesc(
			prometheus.BuildFQName(ns, "queue", "received_total"),
			"Monotonic count of successful receives against the queue.",
			[]string{"queue"}, nil,
		),
		visibility: prometheus.NewDesc(
			prometheus.BuildFQName(ns, "queue", "visibility_timeout_seconds"),
			"Configured visibility timeout for the queue.",
			[]string{"queue"}, nil,
		),
		delay: prometheus.NewDesc(
			prometheus.BuildFQName(ns, "queue", "delay_seconds"),
			"Configured default send delay for the queue.",
			[]string{"queue"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.totalScrapes.Describe(ch)
	c.scrapeErrors.Describe(ch)
	c.scrapeDuration.Describe(ch)
	ch <- c.messages
	ch <- c.hiddenMessages
	ch <- c.totalSent
	ch <- c.totalReceived
	ch <- c.visibility
	ch <- c.delay
}

// Collect implements prometheus.Collector, re-reading every queue's
// attributes on each scrape.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	start := time.Now()
	c.totalScrapes.Inc()

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	names, err := c.source.ListQueues(ctx)
	if err != nil {
		c.scrapeErrors.Inc()
	}

	for _, qname := range names {
		attrs, err := c.source.GetQueueAttributes(ctx, qname)
		if err != nil {
			c.scrapeErrors.Inc()
			continue
		}

		ch <- prometheus.MustNewConstMetric(c.messages, prometheus.GaugeValue, float64(attrs.Messages), qname)
		ch <- prometheus.MustNewConstMetric(c.hiddenMessages, prometheus.GaugeValue, float64(attrs.HiddenMessages), qname)
		ch <- prometheus.MustNewConstMetric(c.totalSent, prometheus.CounterValue, float64(attrs.TotalSent), qname)
		ch <- prometheus.MustNewConstMetric(c.totalReceived, prometheus.CounterValue, float64(attrs.TotalReceived), qname)
		ch <- prometheus.MustNewConstMetric(c.visibility, prometheus.GaugeValue, attrs.VisibilityTimeout.Seconds(), qname)
		ch <- prometheus.MustNewConstMetric(c.delay, prometheus.GaugeValue, attrs.Delay.Seconds(), qname)
	}

	c.scrapeDuration.Observe(time.Since(start).Seconds())
	c.totalScrapes.Collect(ch)
	c.scrapeErrors.Collect(ch)
	c.scrapeDuration.Collect(ch)
}
