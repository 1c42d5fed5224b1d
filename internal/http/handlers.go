package httpx

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"todo-service/backend/internal/tasks"
)

// JavaScript-style ISO-8601 with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z"

type Server struct {
	R     *gin.Engine
	Store tasks.Store
	Now   func() time.Time
}

func NewServer(store tasks.Store) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), RequestID(), CORS())

	s := &Server{R: r, Store: store, Now: time.Now}

	r.GET("/health", s.health)
	r.GET("/ready", s.ready)

	r.GET("/allTasks", s.listTasks)
	r.POST("/task", s.createTask)
	r.DELETE("/task/:taskId", s.deleteTask)

	return s
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": s.Now().UTC().Format(timestampLayout)})
}

func (s *Server) ready(c *gin.Context) {
	if err := s.Store.Ping(c.Request.Context()); err != nil {
		log.Printf("readiness check failed (request %s): %v", requestID(c), err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (s *Server) listTasks(c *gin.Context) {
	out, err := s.Store.List(c.Request.Context())
	if err != nil {
		s.fail(c, "list tasks", err)
		return
	}
	log.Printf("retrieved %d tasks", len(out))
	c.JSON(http.StatusOK, out)
}

type createTaskRequest struct {
	TaskName any `json:"task_name"`
}

// name treats null, false, 0 and "" as a missing name. Other non-string
// values are not a task name at all.
func (r createTaskRequest) name() (string, error) {
	switch v := r.TaskName.(type) {
	case nil:
		return "", tasks.ErrNameRequired
	case string:
		return v, tasks.ValidateName(v)
	case bool:
		if !v {
			return "", tasks.ErrNameRequired
		}
	case float64:
		if v == 0 {
			return "", tasks.ErrNameRequired
		}
	}
	return "", errInvalidBody
}

func (s *Server) createTask(c *gin.Context) {
	var req createTaskRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, "decode task", err)
		return
	}
	name, err := req.name()
	if err != nil {
		s.fail(c, "create task", err)
		return
	}

	id, err := s.Store.Create(c.Request.Context(), name)
	if err != nil {
		s.fail(c, "create task", err)
		return
	}
	log.Printf("added task %d", id)
	c.JSON(http.StatusCreated, gin.H{"message": "Added task successfully", "taskId": id})
}

func (s *Server) deleteTask(c *gin.Context) {
	id, err := tasks.ParseID(c.Param("taskId"))
	if err != nil {
		s.fail(c, "delete task", err)
		return
	}
	if err := s.Store.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, "delete task", err)
		return
	}
	log.Printf("deleted task %d", id)
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
