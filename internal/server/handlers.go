package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/san-kum/physlab/internal/anim"
	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/content"
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/experiment"
	"github.com/san-kum/physlab/internal/lesson"
	"github.com/san-kum/physlab/internal/persistence"
	"github.com/san-kum/physlab/internal/quiz"
)

type lessonSummary struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Diagrams []string `json:"diagrams"`
	Examples int      `json:"examples"`
}

func (s *Server) listLessons(w http.ResponseWriter, r *http.Request) {
	lessons := s.catalog.Lessons()
	out := make([]lessonSummary, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, lessonSummary{
			ID:       l.ID,
			Title:    l.Title,
			Summary:  l.Summary,
			Diagrams: l.Diagrams(),
			Examples: len(l.Examples()),
		})
	}
	respondJSON(w, http.StatusOK, out)
}

type lessonResponse struct {
	Page           *lesson.Page        `json:"page"`
	Sections       []lesson.Panel      `json:"sections"`
	KnowledgeCheck quiz.KnowledgeCheck `json:"knowledgeCheck"`
}

func (s *Server) lookupLesson(w http.ResponseWriter, r *http.Request) (lesson.Lesson, bool) {
	l, err := s.catalog.Lesson(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, http.StatusNotFound, "lesson not found", err)
		return lesson.Lesson{}, false
	}
	return l, true
}

func (s *Server) getLesson(w http.ResponseWriter, r *http.Request) {
	l, ok := s.lookupLesson(w, r)
	if !ok {
		return
	}

	var course *lesson.Course
	if id := r.URL.Query().Get("course"); id != "" {
		course = &lesson.Course{CourseID: id}
	}
	page, err := l.Shell().Mount(course)
	if err != nil {
		if errors.Is(err, dynamo.ErrMissingCourse) {
			respondError(w, r, http.StatusBadRequest, "Course data missing", err)
			return
		}
		respondError(w, r, http.StatusInternalServerError, "could not load lesson", err)
		return
	}

	respondJSON(w, http.StatusOK, lessonResponse{
		Page:           page,
		Sections:       l.Sections,
		KnowledgeCheck: l.KnowledgeCheck.ForCourse(page.Course.CourseID),
	})
}

type exampleResponse struct {
	Index   int              `json:"index"`
	Total   int              `json:"total"`
	Example *content.Example `json:"example,omitempty"`
}

func (s *Server) getExample(w http.ResponseWriter, r *http.Request) {
	l, ok := s.lookupLesson(w, r)
	if !ok {
		return
	}

	page := 0
	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, "page must be an integer", err)
			return
		}
		page = n
	}

	examples := l.Examples()
	pager := content.NewPager(len(examples))
	resp := exampleResponse{Index: pager.Seek(page), Total: pager.Len()}
	if ex, ok := pager.Current(examples); ok {
		resp.Example = &ex
	}
	respondJSON(w, http.StatusOK, resp)
}

type diagramInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Presets     []string `json:"presets"`
}

func (s *Server) listDiagrams(w http.ResponseWriter, r *http.Request) {
	names := s.registry.List()
	out := make([]diagramInfo, 0, len(names))
	for _, n := range names {
		out = append(out, diagramInfo{Name: n, Description: s.registry.Describe(n), Presets: config.ListPresets(n)})
	}
	respondJSON(w, http.StatusOK, out)
}

type traceResponse struct {
	Diagram string             `json:"diagram"`
	Params  experiment.Params  `json:"params"`
	Ticks   int                `json:"ticks"`
	Metrics map[string]float64 `json:"metrics"`
	Frames  []anim.Frame       `json:"frames"`
}

// queryFloat overwrites *dst when the query has key. It returns false after
// writing a 400.
func queryFloat(w http.ResponseWriter, r *http.Request, key string, dst *float64) bool {
	v := r.URL.Query().Get(key)
	if v == "" {
		return true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, key+" must be a number", err)
		return false
	}
	*dst = f
	return true
}

func (s *Server) getTrace(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !s.registry.Has(name) {
		respondError(w, r, http.StatusNotFound, "diagram not found", dynamo.ErrUnknownDiagram)
		return
	}

	params := experiment.DefaultParams()
	if preset := r.URL.Query().Get("preset"); preset != "" {
		p := config.GetPreset(name, preset)
		if p == nil {
			respondError(w, r, http.StatusBadRequest, "unknown preset", nil)
			return
		}
		if name == experiment.LightPulse {
			params.Light = p.Light
		} else {
			params.Collision = p.Collision
		}
	}
	for key, dst := range map[string]*float64{
		"mass1":     &params.Collision.Mass1,
		"velocity1": &params.Collision.Velocity1,
		"mass2":     &params.Collision.Mass2,
		"velocity2": &params.Collision.Velocity2,
		"distance":  &params.Light.Distance,
	} {
		if !queryFloat(w, r, key, dst) {
			return
		}
	}

	scene, err := s.registry.Scene(name, params)
	if err != nil {
		respondError(w, r, http.StatusNotFound, "diagram not found", err)
		return
	}

	exp := experiment.New(experiment.Config{Diagram: name, Params: params, Anim: s.animCfg})
	if err := exp.Setup(scene, s.registry.DefaultMetrics(name)); err != nil {
		respondError(w, r, http.StatusInternalServerError, "could not set up diagram", err)
		return
	}
	res, err := exp.Run(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "diagram run failed", err)
		return
	}

	// Report the clamped values the scene actually used.
	switch sc := scene.(type) {
	case *anim.CollisionScene:
		params.Collision = sc.Params()
	case *anim.LightPulseScene:
		params.Light = sc.Params()
	}

	respondJSON(w, http.StatusOK, traceResponse{
		Diagram: name,
		Params:  params,
		Ticks:   res.Ticks,
		Metrics: res.Metrics,
		Frames:  res.Frames,
	})
}

type resultRequest struct {
	CourseID   string        `json:"courseId" validate:"required"`
	LessonPath string        `json:"lessonPath" validate:"required"`
	Score      float64       `json:"score" validate:"gte=0,lte=1"`
	Results    []quiz.Result `json:"results" validate:"dive"`
}

func (s *Server) postResult(w http.ResponseWriter, r *http.Request) {
	if s.attempts == nil {
		respondError(w, r, http.StatusServiceUnavailable, "attempt storage disabled", nil)
		return
	}

	var req resultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request format", err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid knowledge check result", err)
		return
	}

	id, err := s.attempts.RecordAttempt(r.Context(), persistence.Attempt{
		CourseID:   req.CourseID,
		LessonPath: req.LessonPath,
		Score:      req.Score,
		Results:    req.Results,
	})
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "could not store attempt", err)
		return
	}
	s.logger.Info("attempt stored", "id", id, "lesson", req.LessonPath, "score", req.Score)
	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) listAttempts(w http.ResponseWriter, r *http.Request) {
	if s.attempts == nil {
		respondError(w, r, http.StatusServiceUnavailable, "attempt storage disabled", nil)
		return
	}
	attempts, err := s.attempts.Attempts(r.Context(), r.URL.Query().Get("lesson"))
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "could not load attempts", err)
		return
	}
	respondJSON(w, http.StatusOK, attempts)
}
