package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/studentregistry/internal/app/models/dto"
	"github.com/yigit/studentregistry/internal/app/services"
	"github.com/yigit/studentregistry/internal/middleware"
)

// StudentController handles student-related operations
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// parseStudentID parses the :id path parameter. A value that is not a
// UUID cannot name any student, so it gets the same 404 as an unknown id.
func parseStudentID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Student not found")
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))
		return uuid.Nil, false
	}
	return id, true
}

// GetAllStudents retrieves all students
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	students, err := c.studentService.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, students)
}

// GetStudentByID retrieves a student by ID
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, ok := parseStudentID(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.GetOne(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if student == nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Student not found")
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// CreateStudent creates a new student
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewValidationErrorResponse(err))
		return
	}

	student, err := c.studentService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Location", fmt.Sprintf("/api/v1/students/%s", student.ID))
	ctx.JSON(http.StatusCreated, student)
}

// UpdateStudent applies a partial update to a student. Fields absent from
// the payload keep their stored values.
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseStudentID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewValidationErrorResponse(err))
		return
	}

	student, err := c.studentService.Update(ctx.Request.Context(), &req, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// 201 on success; existing clients depend on it
	ctx.JSON(http.StatusCreated, student)
}

// DeleteStudent removes a student. Deleting an unknown ID still returns 204.
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseStudentID(ctx)
	if !ok {
		return
	}

	if err := c.studentService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
