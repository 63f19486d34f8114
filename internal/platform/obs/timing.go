package obs

import (
	"context"
	"log"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// SummarizeSolve logs a locale-formatted one-line summary of a completed
// solve, grouping large iteration counts and distances for readability.
func SummarizeSolve(ctx context.Context, algorithm string, iterations int64, distanceKm, priceTotal float64) {
	reqID, _ := ctx.Value(RequestIDKey).(string)
	printer.Printf(
		"req_id=%s algorithm=%s iterations=%d total_distance_km=%.2f total_price=%.2f\n",
		reqID, algorithm, iterations, distanceKm, priceTotal,
	)
}

type ctxKey string

const RequestIDKey ctxKey = "req_id"

func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s op=%s dur=%dms err=%v", reqID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("req_id=%s op=%s dur=%dms", reqID, name, dur.Milliseconds())
	}
}
