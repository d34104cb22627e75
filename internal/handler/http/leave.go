package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/SkShizan/clg-project/internal/domain/leave"
	"github.com/SkShizan/clg-project/internal/handler/http/middleware"
	"github.com/SkShizan/clg-project/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
	}
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	emp, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req leave.CreateLeaveRequestRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// 2. Call service
	created, err := l.leaveService.Submit(r.Context(), emp, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", created)
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	emp, ok := middleware.EmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requests, err := l.leaveService.ListOwn(r.Context(), emp)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListPending implements LeaveHandler.
func (l *LeaveHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	requests, err := l.leaveService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// Decide implements LeaveHandler.
func (l *LeaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	decision := chi.URLParam(r, "decision")

	result, err := l.leaveService.Decide(r.Context(), requestID, decision)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Leave request rejected"
	if result.Request.Status == leave.StatusApproved {
		message = "Leave request approved"
	}
	response.SuccessWithMessage(w, message, result)
}
