package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/clima-metrics-etl/internal/domain"
	"github.com/couchcryptid/clima-metrics-etl/internal/observability"
)

// maxObservationBytes bounds a POST /v1/readings body.
const maxObservationBytes = 1 << 20

// Deriver turns a raw observation into a dashboard reading.
type Deriver interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.DashboardReading, error)
}

// SnapshotReader serves the latest stored reading per province.
type SnapshotReader interface {
	Latest(ctx context.Context, provincia string) (domain.DashboardReading, error)
	List(ctx context.Context) ([]domain.DashboardReading, error)
}

// ReadingsAPI serves /v1/readings. A nil snapshot reader disables the GET
// routes, which then answer 404.
type ReadingsAPI struct {
	deriver   Deriver
	snapshots SnapshotReader
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewReadingsAPI creates the readings handlers.
func NewReadingsAPI(deriver Deriver, snapshots SnapshotReader, metrics *observability.Metrics, logger *slog.Logger) *ReadingsAPI {
	return &ReadingsAPI{deriver: deriver, snapshots: snapshots, metrics: metrics, logger: logger}
}

func (a *ReadingsAPI) handleDerive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxObservationBytes))
	if err != nil {
		a.metrics.HTTPDerivations.WithLabelValues("invalid").Inc()
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(w, status, err)
		return
	}

	reading, err := a.deriver.Transform(r.Context(), domain.RawEvent{Value: body})
	if err != nil {
		a.metrics.HTTPDerivations.WithLabelValues("invalid").Inc()
		a.logger.Debug("rejected observation", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}

	a.metrics.HTTPDerivations.WithLabelValues("success").Inc()
	sharedobs.WriteJSON(w, http.StatusOK, reading)
}

func (a *ReadingsAPI) handleLatest(w http.ResponseWriter, r *http.Request) {
	if a.snapshots == nil {
		writeError(w, http.StatusNotFound, errSnapshotsDisabled)
		return
	}

	reading, err := a.snapshots.Latest(r.Context(), r.PathValue("provincia"))
	switch {
	case errors.Is(err, domain.ErrReadingNotFound):
		writeError(w, http.StatusNotFound, err)
	case err != nil:
		a.logger.Error("snapshot lookup failed", "provincia", r.PathValue("provincia"), "error", err)
		writeError(w, http.StatusInternalServerError, err)
	default:
		sharedobs.WriteJSON(w, http.StatusOK, reading)
	}
}

func (a *ReadingsAPI) handleList(w http.ResponseWriter, r *http.Request) {
	if a.snapshots == nil {
		writeError(w, http.StatusNotFound, errSnapshotsDisabled)
		return
	}

	readings, err := a.snapshots.List(r.Context())
	if err != nil {
		a.logger.Error("snapshot list failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{"readings": readings})
}

var errSnapshotsDisabled = errors.New("snapshot store disabled")

func writeError(w http.ResponseWriter, status int, err error) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": err.Error()})
}
