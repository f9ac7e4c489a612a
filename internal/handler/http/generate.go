package http

import (
	"encoding/json"
	"net/http"

	"github.com/anush47/salaryapp-backend-go/internal/handler/http/response"
	"github.com/anush47/salaryapp-backend-go/internal/service/generate"
)

type GenerateHandler interface {
	Run(w http.ResponseWriter, r *http.Request)
}

type generateHandlerImpl struct {
	generateService generate.GenerateService
}

func NewGenerateHandler(generateService generate.GenerateService) GenerateHandler {
	return &generateHandlerImpl{generateService: generateService}
}

// Run executes the full pipeline. A partial run still returns 200 with the
// per-step report so the client can retry just the failed step.
func (h *generateHandlerImpl) Run(w http.ResponseWriter, r *http.Request) {
	companyID, ok := requestCompanyID(w, r)
	if !ok {
		return
	}

	var req generate.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.CompanyID = companyID

	report, err := h.generateService.Run(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}
