package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-library-backend/internal/application"
	"github.com/oksasatya/go-library-backend/internal/domain/entity"
	"github.com/oksasatya/go-library-backend/pkg/helpers"
	"github.com/oksasatya/go-library-backend/pkg/response"
	"github.com/oksasatya/go-library-backend/pkg/validation"
)

type LoanHandler struct {
	Svc    *application.LoanService
	Logger *logrus.Logger
}

func NewLoanHandler(svc *application.LoanService, logger *logrus.Logger) *LoanHandler {
	return &LoanHandler{Svc: svc, Logger: logger}
}

type createLoanRequest struct {
	UserID  int64  `json:"userId" binding:"required,id"`
	BookID  int64  `json:"bookId" binding:"required,id"`
	DueDate string `json:"dueDate" binding:"required,isodate"`
}

type LoanResponse struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"userId"`
	BookID   int64  `json:"bookId"`
	LoanDate string `json:"loanDate"`
	DueDate  string `json:"dueDate"`
}

func toLoanResponse(l *entity.Loan) LoanResponse {
	return LoanResponse{
		ID:       l.ID,
		UserID:   l.UserID,
		BookID:   l.BookID,
		LoanDate: l.LoanDate.Format(time.DateOnly),
		DueDate:  l.DueDate.Format(time.DateOnly),
	}
}

// Create POST /api/loans {userId, bookId, dueDate}
func (h *LoanHandler) Create(c *gin.Context) {
	var req createLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	due, err := helpers.ParseDate(req.DueDate)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"dueDate": "must be a date in format YYYY-MM-DD"})
		return
	}

	l, err := h.Svc.CreateLoan(c.Request.Context(), application.CreateLoanInput{
		UserID:  req.UserID,
		BookID:  req.BookID,
		DueDate: due,
	})
	if err != nil {
		writeError(c, h.Logger, "create loan", err)
		return
	}
	response.Success(c, http.StatusOK, toLoanResponse(l), "loan created", nil)
}

// ListByUser GET /api/loans/user/:userId
func (h *LoanHandler) ListByUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || userID <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"userId": "must be a positive id"})
		return
	}

	loans, err := h.Svc.ListLoansByUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.Logger, "list loans", err)
		return
	}
	out := make([]LoanResponse, 0, len(loans))
	for _, l := range loans {
		out = append(out, toLoanResponse(l))
	}
	response.Success(c, http.StatusOK, out, "loans", map[string]any{"count": len(out)})
}
