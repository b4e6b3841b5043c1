package elastic_client

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/revenue/pkg/revenue"
)

const HistoryIndexName = "revenue-history"

// HistoryDocument is a single day-x of OD sales, flattened for analytics
type HistoryDocument struct {
	Service       string
	DepartureDate time.Time
	Origin        string
	Destination   string

	SaleDayX int
	SaleDate time.Time
	Count    int
	Revenue  float64
}

func HistoryDocuments(od *revenue.OD, history []revenue.HistoryRecord) []HistoryDocument {
	service := od.Service()
	documents := make([]HistoryDocument, 0, len(history))

	for _, record := range history {
		documents = append(documents, HistoryDocument{
			Service:       service.Name,
			DepartureDate: service.DepartureDate,
			Origin:        od.Origin.Name,
			Destination:   od.Destination.Name,
			SaleDayX:      record.SaleDayX,
			SaleDate:      service.DepartureDate.AddDate(0, 0, record.SaleDayX),
			Count:         record.Count,
			Revenue:       record.Revenue,
		})
	}

	return documents
}

// IndexHistory queues the history of every OD of the service into the bulk indexer
func IndexHistory(service *revenue.Service) {
	if Client == nil {
		return
	}

	for _, od := range service.ODs() {
		for _, document := range HistoryDocuments(od, od.History()) {
			documentJSON, err := json.Marshal(document)
			if err != nil {
				log.Error().Err(err).Msg("Failed to marshal history document")
				continue
			}

			IndexRequest(HistoryIndexName, bytes.NewReader(documentJSON))
		}
	}
}
