package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/segyhp/fintrack/internal/domain"
	customError "github.com/segyhp/fintrack/pkg/errors"
	"github.com/segyhp/fintrack/pkg/response"
)

// MaxUploadSize bounds the multipart body of a plan upload.
const MaxUploadSize = 10 << 20

// PlanInserter stores a validated batch of plans.
type PlanInserter interface {
	InsertPlans(ctx context.Context, rows []domain.PlanRow) (*domain.InsertPlansResult, error)
}

// PlanFileParser turns an uploaded file into plan rows.
type PlanFileParser interface {
	Parse(r io.Reader, filename string) ([]domain.PlanRow, error)
}

type PlanHandler struct {
	plans  PlanInserter
	parser PlanFileParser
}

func NewPlanHandler(plans PlanInserter, parser PlanFileParser) *PlanHandler {
	return &PlanHandler{
		plans:  plans,
		parser: parser,
	}
}

// InsertPlans handles POST /plans_insert with a multipart "file" field
func (h *PlanHandler) InsertPlans(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		response.FromError(w, customError.WrapInvalidRequest("request must be a multipart form of at most 10MB", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.FromError(w, customError.WrapInvalidRequest("missing form field 'file'", err))
		return
	}
	defer file.Close()

	rows, err := h.parser.Parse(file, header.Filename)
	if err != nil {
		response.FromError(w, err)
		return
	}

	result, err := h.plans.InsertPlans(r.Context(), rows)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, result)
}
