// Package reports publishes execution reports for order owners to a
// Kafka topic, keyed by client so each owner's reports stay ordered.
package reports

// Report is the wire representation of one execution report
type Report struct {
	Type          ReportType `json:"type"`
	ClientID      string     `json:"clientID"`
	ClientOrderID string     `json:"clientOrderID"`
	OrderNumber   uint64     `json:"orderNumber,omitempty"`
	Instrument    string     `json:"instrument,omitempty"`
	Price         uint64     `json:"price,omitempty"`
	Quantity      uint64     `json:"quantity,omitempty"`
	Liquidity     string     `json:"liquidity,omitempty"`
	MatchNumber   uint64     `json:"matchNumber,omitempty"`
	Reason        string     `json:"reason,omitempty"`
}

// ReportType identifies a report
type ReportType string

// Report types
const (
	ReportAccepted ReportType = "accepted"
	ReportRejected ReportType = "rejected"
	ReportExecuted ReportType = "executed"
	ReportCanceled ReportType = "canceled"
)

// Sender defines an interface for sending reports. It decouples the
// gateway from the Kafka implementation in this package.
type Sender interface {
	SendReport(report *Report) error
	Close() error
}
