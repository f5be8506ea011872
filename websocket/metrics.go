// Package websocket - websocket/metrics.go
// file: websocket/metrics.go

package websocket

import (
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatch"

	"kiddushware/logger"
)

// Namespace for all KiddushWare metrics
var metricsNamespace = "KiddushWare"

// Reuse a single CloudWatch client for all metrics calls
var cwClient = cloudwatch.New(session.Must(session.NewSession()))

// metricsEnabled gates CloudWatch calls; off unless main enables it, so
// local runs and tests never touch AWS.
var metricsEnabled = false

// EnableMetrics turns CloudWatch publishing on (production only).
func EnableMetrics() {
	metricsEnabled = true
}

// PublishLiveConnections pushes the current connection count of a view.
func PublishLiveConnections(count int, view string) {
	putMetric("LiveConnections", float64(count), "Count", view)
}

// PublishBroadcastBacklog pushes how many clients missed a broadcast
// because their send queue was full.
func PublishBroadcastBacklog(dropped int, view string) {
	putMetric("BroadcastDropped", float64(dropped), "Count", view)
}

// PublishSubmission counts one public sponsorship submission.
func PublishSubmission(view string) {
	putMetric("SponsorshipSubmissions", 1, "Count", view)
}

// -----------------------------------------------------------
// internal helper function to package up CloudWatch calls
// -----------------------------------------------------------
func putMetric(metricName string, value float64, unit string, view string) {
	if !metricsEnabled {
		return
	}
	_, err := cwClient.PutMetricData(&cloudwatch.PutMetricDataInput{
		Namespace: aws.String(metricsNamespace),
		MetricData: []*cloudwatch.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Dimensions: []*cloudwatch.Dimension{
					{
						Name:  aws.String("View"),
						Value: aws.String(view),
					},
				},
				Timestamp: aws.Time(time.Now()),
				Value:     aws.Float64(value),
				Unit:      aws.String(unit),
			},
		},
	})

	if err != nil {
		logger.Error.Printf("[putMetric] CloudWatch metric failed (%s): %v", metricName, err)
	}
}
