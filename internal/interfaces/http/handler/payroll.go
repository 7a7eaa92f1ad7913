package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apppayroll "github.com/shopledger/backend/internal/application/payroll"
	"github.com/shopledger/backend/internal/domain/payroll"
	"github.com/shopledger/backend/internal/interfaces/http/dto"
)

// PayrollHandler handles employee payroll API endpoints
type PayrollHandler struct {
	BaseHandler
	service *apppayroll.PayrollService
}

// NewPayrollHandler creates a new PayrollHandler
func NewPayrollHandler(service *apppayroll.PayrollService) *PayrollHandler {
	return &PayrollHandler{service: service}
}

// CreateEmployeeRequest represents a request to register an employee
type CreateEmployeeRequest struct {
	Name           string          `json:"name" binding:"required,max=255"`
	JoiningDate    string          `json:"joining_date" binding:"required"`
	BaseSalary     decimal.Decimal `json:"base_salary" binding:"required"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// TransactionRequest represents one transaction submitted for a month
type TransactionRequest struct {
	Type        string          `json:"type" binding:"required,oneof=ADVANCE DEDUCTION SALARY OTHER"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
	Date        string          `json:"date" binding:"required"`
}

// RecomputeMonthRequest represents a request to settle a month's payroll
type RecomputeMonthRequest struct {
	Transactions     []TransactionRequest `json:"transactions"`
	ManualNetPayable *decimal.Decimal     `json:"manual_net_payable"`
}

// AttendanceEntryRequest represents one attendance edit within a month
type AttendanceEntryRequest struct {
	Date   string `json:"date" binding:"required"`
	Status string `json:"status" binding:"required,oneof=PRESENT ABSENT HALF_DAY LEAVE"`
}

// UpdateAttendanceRequest represents a request to edit a month's attendance
type UpdateAttendanceRequest struct {
	Records []AttendanceEntryRequest `json:"records" binding:"required,min=1,dive"`
}

// DailyAttendanceEntryRequest represents one employee's status in a daily marking
type DailyAttendanceEntryRequest struct {
	EmployeeName string `json:"employee_name" binding:"required"`
	Status       string `json:"status" binding:"required,oneof=PRESENT ABSENT HALF_DAY LEAVE"`
}

// DailyAttendanceRequest represents a bulk attendance marking for one day
type DailyAttendanceRequest struct {
	Date    string                        `json:"date" binding:"required"`
	Entries []DailyAttendanceEntryRequest `json:"entries" binding:"required,min=1,dive"`
}

// CreateEmployee handles POST /payroll/employees
func (h *PayrollHandler) CreateEmployee(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	joiningDate, err := time.Parse(time.DateOnly, req.JoiningDate)
	if err != nil {
		h.BadRequest(c, "Invalid joining date, expected YYYY-MM-DD")
		return
	}

	employee, err := h.service.CreateEmployee(c.Request.Context(), apppayroll.CreateEmployeeInput{
		Name:           req.Name,
		JoiningDate:    joiningDate,
		BaseSalary:     req.BaseSalary,
		CurrentBalance: req.CurrentBalance,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, employee)
}

// ListEmployees handles GET /payroll/employees
func (h *PayrollHandler) ListEmployees(c *gin.Context) {
	employees, err := h.service.ListEmployees(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, employees)
}

// GetEmployee handles GET /payroll/employees/:id
func (h *PayrollHandler) GetEmployee(c *gin.Context) {
	employeeID, ok := h.employeeID(c)
	if !ok {
		return
	}

	detail, err := h.service.GetEmployee(c.Request.Context(), employeeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, detail)
}

// RecomputeMonth handles POST /payroll/employees/:id/months/:month/recompute
func (h *PayrollHandler) RecomputeMonth(c *gin.Context) {
	employeeID, ok := h.employeeID(c)
	if !ok {
		return
	}

	month, err := payroll.ParseMonth(c.Param("month"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req RecomputeMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := apppayroll.RecomputeMonthInput{ManualNetPayable: req.ManualNetPayable}
	for _, txn := range req.Transactions {
		date, err := time.Parse(time.DateOnly, txn.Date)
		if err != nil {
			h.BadRequest(c, "Invalid transaction date, expected YYYY-MM-DD")
			return
		}
		input.Transactions = append(input.Transactions, apppayroll.TransactionInput{
			Type:        payroll.TransactionType(txn.Type),
			Amount:      txn.Amount,
			Description: txn.Description,
			Date:        date,
		})
	}

	result, err := h.service.RecomputeMonth(c.Request.Context(), employeeID, month, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// UpdateAttendance handles PUT /payroll/employees/:id/months/:month/attendance
func (h *PayrollHandler) UpdateAttendance(c *gin.Context) {
	employeeID, ok := h.employeeID(c)
	if !ok {
		return
	}

	month, err := payroll.ParseMonth(c.Param("month"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries := make([]apppayroll.AttendanceInput, 0, len(req.Records))
	for _, record := range req.Records {
		date, err := time.Parse(time.DateOnly, record.Date)
		if err != nil {
			h.BadRequest(c, "Invalid attendance date, expected YYYY-MM-DD")
			return
		}
		entries = append(entries, apppayroll.AttendanceInput{
			Date:   date,
			Status: payroll.AttendanceStatus(record.Status),
		})
	}

	result, err := h.service.UpdateAttendance(c.Request.Context(), employeeID, month, entries)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// DeleteTransaction handles DELETE /payroll/employees/:id/transactions/:txnID
func (h *PayrollHandler) DeleteTransaction(c *gin.Context) {
	employeeID, ok := h.employeeID(c)
	if !ok {
		return
	}

	transactionID, err := uuid.Parse(c.Param("txnID"))
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	result, err := h.service.DeleteTransaction(c.Request.Context(), employeeID, transactionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// BulkDailyAttendance handles POST /payroll/attendance/daily
func (h *PayrollHandler) BulkDailyAttendance(c *gin.Context) {
	var req DailyAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		h.BadRequest(c, "Invalid attendance date, expected YYYY-MM-DD")
		return
	}

	entries := make([]apppayroll.DailyAttendanceEntry, 0, len(req.Entries))
	for _, entry := range req.Entries {
		entries = append(entries, apppayroll.DailyAttendanceEntry{
			EmployeeName: entry.EmployeeName,
			Status:       payroll.AttendanceStatus(entry.Status),
		})
	}

	results, err := h.service.BulkDailyAttendance(c.Request.Context(), date, entries)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

func (h *PayrollHandler) employeeID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid employee ID format")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid employee ID format")
		return uuid.Nil, false
	}
	return id, true
}

// RegisterRoutes registers all payroll routes
func (h *PayrollHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payrollGroup := rg.Group("/payroll")
	{
		payrollGroup.POST("/employees", h.CreateEmployee)
		payrollGroup.GET("/employees", h.ListEmployees)
		payrollGroup.GET("/employees/:id", h.GetEmployee)
		payrollGroup.POST("/employees/:id/months/:month/recompute", h.RecomputeMonth)
		payrollGroup.PUT("/employees/:id/months/:month/attendance", h.UpdateAttendance)
		payrollGroup.DELETE("/employees/:id/transactions/:txnID", h.DeleteTransaction)
		payrollGroup.POST("/attendance/daily", h.BulkDailyAttendance)
	}
}
