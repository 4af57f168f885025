package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"sigval/internal/domain"
	"sigval/internal/infra/codec"
	"sigval/internal/usecase"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type validateRequest struct {
	DiagnosticData json.RawMessage `json:"diagnosticData"`
	Policy         string          `json:"policy,omitempty"`
	ValidationTime *time.Time      `json:"validationTime,omitempty"`
}

type validationResponse struct {
	ID         string               `json:"id"`
	PolicyName string               `json:"policyName"`
	CreatedAt  time.Time            `json:"createdAt"`
	Report     *domain.SimpleReport `json:"report"`
	Trace      *domain.TraceNode    `json:"trace,omitempty"`
}

type policyResponse struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type policiesResponse struct {
	Policies []policyResponse `json:"policies"`
}

func (s *Server) handleValidate(c *gin.Context) {
	if s.validateUC == nil {
		writeError(c, domain.ErrNotFound)
		return
	}
	if s.cfg.MaxRequestBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxRequestBytes)
	}
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErrorCode(c, http.StatusRequestEntityTooLarge, "REQUEST_TOO_LARGE", "request body too large")
			return
		}
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	if !s.admit(c, req.Policy) {
		return
	}
	diag, err := codec.DecodeDiagnosticData(req.DiagnosticData)
	if err != nil {
		writeError(c, err)
		return
	}
	rec, err := s.validateUC.Execute(c.Request.Context(), usecase.ValidateDocumentRequest{
		Diagnostic:     diag,
		PolicyName:     req.Policy,
		ValidationTime: req.ValidationTime,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, buildValidationResponse(rec, false))
}

func (s *Server) handleGetValidation(c *gin.Context) {
	if s.validateUC == nil {
		writeError(c, domain.ErrNotFound)
		return
	}
	detail := false
	if raw := c.Query("detail"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeErrorCode(c, http.StatusBadRequest, "INVALID_QUERY", "detail must be a boolean")
			return
		}
		detail = parsed
	}
	rec, err := s.validateUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildValidationResponse(rec, detail))
}

func (s *Server) handleListPolicies(c *gin.Context) {
	out := policiesResponse{Policies: []policyResponse{}}
	if s.policies != nil {
		for _, name := range s.policies.Names() {
			policy, err := s.policies.Policy(name)
			if err != nil {
				writeError(c, err)
				return
			}
			out.Policies = append(out.Policies, policyResponse{Name: policy.Name, Description: policy.Description})
		}
	}
	c.JSON(http.StatusOK, out)
}

func buildValidationResponse(rec *domain.ValidationRecord, detail bool) validationResponse {
	out := validationResponse{
		ID:         rec.ID,
		PolicyName: rec.PolicyName,
		CreatedAt:  rec.CreatedAt,
		Report:     rec.Report,
	}
	if detail {
		out.Trace = rec.Trace
	}
	return out
}

func writeError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidDiagnosticData):
		status, code = http.StatusBadRequest, "INVALID_DIAGNOSTIC_DATA"
	case errors.Is(err, domain.ErrPolicyNotFound):
		status, code = http.StatusNotFound, "POLICY_NOT_FOUND"
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrRateLimited):
		status, code = http.StatusTooManyRequests, "RATE_LIMITED"
	case errors.Is(err, domain.ErrRateLimiterDown):
		writeErrorCode(c, http.StatusTooManyRequests, "RATE_LIMIT_UNAVAILABLE", "rate limiter unavailable")
		return
	}
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = "internal error"
	}
	writeErrorCode(c, status, code, message)
}

func writeErrorCode(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorResponse{
		Code:    code,
		Message: message,
	})
}
