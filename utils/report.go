package utils

import (
	"fmt"
	"strings"

	. "github.com/ahmetb/go-linq"

	"github.com/sb25/REST-Web-Services-interaction/models/ingest"
)

func SummarizeReport(report *ingest.SyncReport) string {
	summary := fmt.Sprintf("%d records: %d alleles found, %d created; %d products found, %d created",
		report.Records,
		report.AllelesFound, report.AllelesCreated,
		report.ProductsFound, report.ProductsCreated)

	var failedKeys []string
	From(report.Failures).SelectT(func(f ingest.RecordFailure) string {
		return f.Key
	}).Distinct().ToSlice(&failedKeys)

	if len(failedKeys) > 0 {
		summary = fmt.Sprintf("%s; %d failed: %s", summary, len(failedKeys), strings.Join(failedKeys, ", "))
	}
	return summary
}
