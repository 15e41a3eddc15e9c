// Package handler は社員ユースケースを REST で公開する echo ゲートウェイです。
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/ogurasousui/employee-directory/internal/adapters/grpc/employeev1"
	grpchandler "github.com/ogurasousui/employee-directory/internal/adapters/grpc/handler"
	"github.com/ogurasousui/employee-directory/internal/core/employee"
	"github.com/ogurasousui/employee-directory/internal/platform/logger"
)

// NextPageTokenHeader は一覧取得で次ページが存在する場合に設定されるヘッダーです。
const NextPageTokenHeader = "X-Next-Page-Token"

// ErrorResponse は失敗時のレスポンスボディです。
type ErrorResponse struct {
	Message string `json:"message"`
}

// EmployeeHandler は /employees 配下のエンドポイントを提供します。
type EmployeeHandler struct {
	svc employee.UseCase
}

func NewEmployeeHandler(svc employee.UseCase) *EmployeeHandler {
	return &EmployeeHandler{svc: svc}
}

// Register は g にルートを登録します。
func (h *EmployeeHandler) Register(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *EmployeeHandler) List(c echo.Context) error {
	pageSize := 0
	if raw := c.QueryParam("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return respondError(c, employee.ErrInvalidPageSize)
		}
		pageSize = n
	}

	result, err := h.svc.ListEmployees(c.Request().Context(), employee.ListEmployeesInput{
		PageSize:  pageSize,
		PageToken: c.QueryParam("page_token"),
	})
	if err != nil {
		return respondError(c, err)
	}

	out := make([]*employeev1.Employee, 0, len(result.Employees))
	for _, e := range result.Employees {
		out = append(out, grpchandler.ToWireEmployee(e))
	}
	if result.NextPageToken != "" {
		c.Response().Header().Set(NextPageTokenHeader, result.NextPageToken)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *EmployeeHandler) Create(c echo.Context) error {
	var req employeev1.CreateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
	}

	created, err := h.svc.CreateEmployee(c.Request().Context(), employee.CreateEmployeeInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		Position:   req.Position,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, grpchandler.ToWireEmployee(created))
}

func (h *EmployeeHandler) Get(c echo.Context) error {
	found, err := h.svc.GetEmployee(c.Request().Context(), employee.GetEmployeeInput{ID: c.Param("id")})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, grpchandler.ToWireEmployee(found))
}

// Update はボディに含まれるフィールドのみを更新します。
func (h *EmployeeHandler) Update(c echo.Context) error {
	var req employeev1.UpdateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
	}

	updated, err := h.svc.UpdateEmployee(c.Request().Context(), employee.UpdateEmployeeInput{
		ID:         c.Param("id"),
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		Position:   req.Position,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, grpchandler.ToWireEmployee(updated))
}

func (h *EmployeeHandler) Delete(c echo.Context) error {
	if err := h.svc.DeleteEmployee(c.Request().Context(), employee.DeleteEmployeeInput{ID: c.Param("id")}); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func respondError(c echo.Context, err error) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		logger.Error(c.Request().Context(), err, "gateway request failed: %s %s", c.Request().Method, c.Path())
		return c.JSON(code, ErrorResponse{Message: "internal error"})
	}
	return c.JSON(code, ErrorResponse{Message: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, employee.ErrInvalidID),
		errors.Is(err, employee.ErrInvalidName),
		errors.Is(err, employee.ErrInvalidEmail),
		errors.Is(err, employee.ErrInvalidPhone),
		errors.Is(err, employee.ErrInvalidDepartment),
		errors.Is(err, employee.ErrInvalidPosition),
		errors.Is(err, employee.ErrInvalidPageSize),
		errors.Is(err, employee.ErrInvalidPageToken):
		return http.StatusBadRequest
	case errors.Is(err, employee.ErrEmployeeNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
