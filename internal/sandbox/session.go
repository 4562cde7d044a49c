package sandbox

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/mtoivan/samplab/internal/errors"
	"github.com/mtoivan/samplab/internal/models"
	"gonum.org/v1/gonum/spatial/r2"
	"io"
	"log/slog"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ScenarioProvider supplies immutable scenario definitions by id. Unknown ids
// yield an error the caller can test with errors.Is against the provider's
// not-found sentinel.
type ScenarioProvider interface {
	Get(id string) (*models.Scenario, error)
}

// Session is one student's sandbox: the loaded scenario, the placed points,
// the bounded undo history, and the view. All methods are safe for concurrent
// use; the session is single-writer behind one mutex.
type Session struct {
	mu sync.Mutex

	id        string
	scenarios ScenarioProvider
	clock     Clock
	rng       *rand.Rand
	logger    *slog.Logger

	scenario     *models.Scenario
	method       models.Method
	points       []models.SamplingPoint
	labelCounter int
	snap         bool
	view         View
	history      history

	// playback is the active timed run, nil while idle.
	playback *playbackRun
}

// SessionOption configures a Session at construction time.
type SessionOption func(*Session)

// WithClock substitutes the timestamp source.
func WithClock(clock Clock) SessionOption {
	return func(s *Session) { s.clock = clock }
}

// WithRand substitutes the randomness source used by placement strategies.
func WithRand(rng *rand.Rand) SessionOption {
	return func(s *Session) { s.rng = rng }
}

// WithLogger attaches a logger for soft failures.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// NewSession creates an empty session. A scenario must be loaded before
// points can be placed.
func NewSession(id string, provider ScenarioProvider, opts ...SessionOption) *Session {
	s := &Session{
		id:        id,
		scenarios: provider,
		clock:     SystemClock(),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // layout jitter, not security
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		snap:      true,
		view:      newView(),
		history:   newHistory(snapshot{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the opaque session identifier.
func (s *Session) ID() string { return s.id }

// State is the read-only projection handed to the presentation layer. Points
// are deep copies; the scenario is immutable after load and shared.
type State struct {
	Scenario        *models.Scenario       `json:"scenario"`
	Method          models.Method          `json:"method"`
	Points          []models.SamplingPoint `json:"points"`
	SnapToGrid      bool                   `json:"snapToGrid"`
	View            View                   `json:"view"`
	CanUndo         bool                   `json:"canUndo"`
	CanRedo         bool                   `json:"canRedo"`
	HistorySize     int                    `json:"historySize"`
	RequiredPoints  int                    `json:"requiredPoints"`
	PlaybackRunning bool                   `json:"playbackRunning"`
}

// State returns the current projection of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := State{
		Scenario:        s.scenario,
		Method:          s.method,
		Points:          clonePoints(s.points),
		SnapToGrid:      s.snap,
		View:            s.view,
		CanUndo:         s.history.canUndo(),
		CanRedo:         s.history.canRedo(),
		HistorySize:     s.history.size(),
		PlaybackRunning: s.playback != nil,
	}
	if s.scenario != nil {
		state.RequiredPoints = s.requiredPointsLocked()
	}
	return state
}

// LoadScenario switches the session to the named scenario: points, labels,
// view, and history all reset to a fresh baseline, and any running playback
// is cancelled first so no stale insert can land afterwards.
func (s *Session) LoadScenario(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scenario, err := s.scenarios.Get(id)
	if err != nil {
		return errors.Wrap(err, "load scenario", slog.String("scenario_id", id))
	}
	s.cancelPlaybackLocked()
	s.scenario = scenario
	s.method = scenario.RecommendedMethod
	s.points = nil
	s.labelCounter = 0
	s.view = newView()
	s.history = newHistory(s.snapshotLocked())
	return nil
}

// Scenario returns the loaded scenario, nil before the first load.
func (s *Session) Scenario() *models.Scenario {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scenario
}

// AddPoint places a point at plan coordinates: snap (when enabled), gate,
// append with the next sequential label, snapshot. A gate rejection returns
// ErrRejectedPlacement and leaves every part of the session untouched.
func (s *Session) AddPoint(x, y float64) (models.SamplingPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addPointLocked(x, y)
}

// AddPointScreen places a point from a pointer event in screen coordinates.
func (s *Session) AddPointScreen(sx, sy float64) (models.SamplingPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	x, y := s.view.ScreenToCanvas(sx, sy)
	return s.addPointLocked(x, y)
}

func (s *Session) addPointLocked(x, y float64) (models.SamplingPoint, error) {
	if s.scenario == nil {
		return models.SamplingPoint{}, ErrNoScenario
	}
	pos := r2.Vec{X: x, Y: y}
	if s.snap {
		pos = snapToGrid(pos, s.scenario.GridSize)
	}
	point, err := s.appendPointLocked(pos)
	if err != nil {
		return models.SamplingPoint{}, err
	}
	s.commitLocked()
	return point, nil
}

// appendPointLocked runs the gate and appends without snapshotting.
func (s *Session) appendPointLocked(pos r2.Vec) (models.SamplingPoint, error) {
	if !acceptable(s.scenario, pos) {
		return models.SamplingPoint{}, ErrRejectedPlacement
	}
	s.labelCounter++
	cell := cellAt(pos, s.scenario.GridSize)
	point := models.SamplingPoint{
		ID:       uuid.NewString(),
		Label:    fmt.Sprintf("S%d", s.labelCounter),
		X:        pos.X,
		Y:        pos.Y,
		Row:      cell.Row,
		Col:      cell.Col,
		PlacedAt: s.clock.Now(),
	}
	s.points = append(s.points, point)
	return point, nil
}

// MovePoint relocates an existing point without recording history; the caller
// commits the surrounding drag with CommitMove on release. A rejected target
// reports ErrRejectedPlacement and leaves the point where it was.
func (s *Session) MovePoint(id string, x, y float64) (models.SamplingPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.movePointLocked(id, x, y)
}

// MovePointScreen relocates a point from a pointer event in screen coordinates.
func (s *Session) MovePointScreen(id string, sx, sy float64) (models.SamplingPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	x, y := s.view.ScreenToCanvas(sx, sy)
	return s.movePointLocked(id, x, y)
}

func (s *Session) movePointLocked(id string, x, y float64) (models.SamplingPoint, error) {
	if s.scenario == nil {
		return models.SamplingPoint{}, ErrNoScenario
	}
	idx := s.indexOfLocked(id)
	if idx < 0 {
		return models.SamplingPoint{}, errors.Wrap(ErrPointNotFound, "move point", slog.String("point_id", id))
	}
	pos := r2.Vec{X: x, Y: y}
	if s.snap {
		pos = snapToGrid(pos, s.scenario.GridSize)
	}
	if !acceptable(s.scenario, pos) {
		return models.SamplingPoint{}, ErrRejectedPlacement
	}
	cell := cellAt(pos, s.scenario.GridSize)
	point := &s.points[idx]
	point.X = pos.X
	point.Y = pos.Y
	point.Row = cell.Row
	point.Col = cell.Col
	return *point, nil
}

// CommitMove records the state after a completed drag as one undo step.
func (s *Session) CommitMove() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scenario == nil {
		return
	}
	s.commitLocked()
}

// AnnotatePoint sets a point's depth and note annotations, as one undo step.
func (s *Session) AnnotatePoint(id string, depth float64, note string) (models.SamplingPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scenario == nil {
		return models.SamplingPoint{}, ErrNoScenario
	}
	idx := s.indexOfLocked(id)
	if idx < 0 {
		return models.SamplingPoint{}, errors.Wrap(ErrPointNotFound, "annotate point", slog.String("point_id", id))
	}
	s.points[idx].Depth = depth
	s.points[idx].Note = note
	s.commitLocked()
	return s.points[idx], nil
}

// DeletePoint removes a point by id and snapshots. The label is not reused.
func (s *Session) DeletePoint(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scenario == nil {
		return ErrNoScenario
	}
	idx := s.indexOfLocked(id)
	if idx < 0 {
		return errors.Wrap(ErrPointNotFound, "delete point", slog.String("point_id", id))
	}
	s.points = append(s.points[:idx], s.points[idx+1:]...)
	s.commitLocked()
	return nil
}

// Clear removes all points and resets the label counter, as one undo step.
// A running playback is cancelled first.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scenario == nil {
		return
	}
	s.cancelPlaybackLocked()
	s.points = nil
	s.labelCounter = 0
	s.commitLocked()
}

// Undo restores the previous snapshot. At the baseline it reports false and
// changes nothing.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.history.undo()
	if !ok {
		return false
	}
	s.restoreLocked(snap)
	return true
}

// Redo re-applies the next snapshot. Without a redo branch it reports false
// and changes nothing.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.history.redo()
	if !ok {
		return false
	}
	s.restoreLocked(snap)
	return true
}

// SetSnap toggles grid snapping for subsequent placements.
func (s *Session) SetSnap(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = enabled
}

// SetMethod records the student's selected placement method.
func (s *Session) SetMethod(method models.Method) error {
	if !method.Valid() {
		return errors.Wrap(ErrUnknownMethod, "set method", slog.String("method", string(method)))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.method = method
	return nil
}

// SetView replaces zoom and pan in one call. Zoom is clamped to its range.
func (s *Session) SetView(zoom, panX, panY float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Zoom = clampZoom(zoom)
	s.view.PanX = panX
	s.view.PanY = panY
}

// SetZoom clamps and applies an absolute zoom level.
func (s *Session) SetZoom(zoom float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Zoom = clampZoom(zoom)
}

// ZoomIn steps the zoom level up by one increment.
func (s *Session) ZoomIn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Zoom = clampZoom(s.view.Zoom + zoomStep)
}

// ZoomOut steps the zoom level down by one increment.
func (s *Session) ZoomOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Zoom = clampZoom(s.view.Zoom - zoomStep)
}

// Pan shifts the view offset by a screen-space delta.
func (s *Session) Pan(dx, dy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.PanX += dx
	s.view.PanY += dy
}

// ResetView restores zoom 1, no pan, and clears the hovered cell.
func (s *Session) ResetView() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = newView()
}

// HoverScreen tracks the grid cell under the pointer. It returns nil, and
// clears the tracked cell, when the pointer is outside the plan.
func (s *Session) HoverScreen(sx, sy float64) *GridCell {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scenario == nil {
		return nil
	}
	x, y := s.view.ScreenToCanvas(sx, sy)
	if x < 0 || y < 0 || x > s.scenario.Width || y > s.scenario.Height {
		s.view.HoveredCell = nil
		return nil
	}
	cell := cellAt(r2.Vec{X: x, Y: y}, s.scenario.GridSize)
	s.view.HoveredCell = &cell
	return &cell
}

// AutoPlace generates a layout with the given strategy and appends every
// accepted candidate through the normal labeling path. The whole batch is one
// undo step. count <= 0 selects the scenario's required point count.
func (s *Session) AutoPlace(method models.Method, count int) ([]models.SamplingPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scenario == nil {
		return nil, ErrNoScenario
	}
	if !method.Valid() {
		return nil, errors.Wrap(ErrUnknownMethod, "auto place", slog.String("method", string(method)))
	}
	if count <= 0 {
		count = s.requiredPointsLocked()
	}
	s.method = method

	candidates := generateLayout(s.scenario, method, count, s.rng)
	added := make([]models.SamplingPoint, 0, len(candidates))
	for _, candidate := range candidates {
		point, err := s.appendPointLocked(candidate)
		if err != nil {
			continue
		}
		added = append(added, point)
	}
	s.commitLocked()
	return added, nil
}

// LoadStandardAnswer replaces the point set wholesale with the scenario's
// reference layout, as one undo step.
func (s *Session) LoadStandardAnswer() ([]models.SamplingPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scenario == nil {
		return nil, ErrNoScenario
	}
	s.cancelPlaybackLocked()
	now := s.clock.Now()
	points := make([]models.SamplingPoint, 0, len(s.scenario.StandardAnswer))
	for i, c := range s.scenario.StandardAnswer {
		cell := cellAt(vec(c), s.scenario.GridSize)
		points = append(points, models.SamplingPoint{
			ID:       uuid.NewString(),
			Label:    fmt.Sprintf("S%d", i+1),
			X:        c.X,
			Y:        c.Y,
			Row:      cell.Row,
			Col:      cell.Col,
			PlacedAt: now,
		})
	}
	s.points = points
	s.labelCounter = len(points)
	s.commitLocked()
	return clonePoints(points), nil
}

// Validate runs the plan checks and refreshes the transient invalid-position
// flags: failing points gain the flag, all others lose it.
func (s *Session) Validate() (models.ValidationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scenario == nil {
		return models.ValidationResult{}, ErrNoScenario
	}
	result := ValidatePlan(s.scenario, s.points)

	flagged := make(map[string]bool)
	for _, check := range result.Checks {
		if check.Name == models.CheckPosition {
			for _, label := range check.FailingLabels {
				flagged[label] = true
			}
		}
	}
	for i := range s.points {
		s.points[i].Invalid = flagged[s.points[i].Label]
	}
	return result, nil
}

// Score assesses the current plan. The result depends only on the points, the
// scenario, and the selected method.
func (s *Session) Score() (models.ScoreResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scenario == nil {
		return models.ScoreResult{}, ErrNoScenario
	}
	return ScorePlan(s.scenario, s.points, s.method), nil
}

// BuildPlan scores the current plan and assembles the record to persist.
// Persistence itself is the caller's concern; a failed save must never roll
// the session back.
func (s *Session) BuildPlan() (models.PlanRecord, models.ScoreResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scenario == nil {
		return models.PlanRecord{}, models.ScoreResult{}, ErrNoScenario
	}
	score := ScorePlan(s.scenario, s.points, s.method)
	points := clonePoints(s.points)
	for i := range points {
		// The invalid marker is presentation state, it stays out of the record.
		points[i].Invalid = false
	}
	record := models.PlanRecord{
		ID:         uuid.NewString(),
		ScenarioID: s.scenario.ID,
		Method:     s.method,
		Points:     models.PointList(points),
		TotalScore: score.TotalScore,
		Grade:      score.Grade,
		CreatedAt:  s.clock.Now(),
	}
	return record, score, nil
}

// RestorePlan loads a saved plan: its scenario, its points, and its method,
// with a fresh baseline history. The label counter resumes after the highest
// restored label so future labels never collide.
func (s *Session) RestorePlan(record models.PlanRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scenario, err := s.scenarios.Get(record.ScenarioID)
	if err != nil {
		return errors.Wrap(err, "load scenario for plan",
			slog.String("plan_id", record.ID), slog.String("scenario_id", record.ScenarioID))
	}
	s.cancelPlaybackLocked()
	s.scenario = scenario
	s.method = scenario.RecommendedMethod
	if record.Method.Valid() {
		s.method = record.Method
	}
	s.points = clonePoints(record.Points)
	counter := 0
	for _, p := range s.points {
		if seq := labelSequence(p.Label); seq > counter {
			counter = seq
		}
	}
	s.labelCounter = counter
	s.view = newView()
	s.history = newHistory(s.snapshotLocked())
	return nil
}

func (s *Session) indexOfLocked(id string) int {
	for i := range s.points {
		if s.points[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) requiredPointsLocked() int {
	return RequiredPoints(s.scenario)
}

func (s *Session) snapshotLocked() snapshot {
	return snapshot{
		points:       clonePoints(s.points),
		labelCounter: s.labelCounter,
		takenAt:      s.clock.Now(),
	}
}

func (s *Session) commitLocked() {
	s.history.push(s.snapshotLocked())
}

func (s *Session) restoreLocked(snap snapshot) {
	s.points = clonePoints(snap.points)
	s.labelCounter = snap.labelCounter
}

// labelSequence extracts the numeric part of a point label, 0 when malformed.
func labelSequence(label string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(label, "S"))
	if err != nil {
		return 0
	}
	return n
}

// CanvasToGrid derives the grid cell containing a plan position.
func CanvasToGrid(x, y, gridSize float64) GridCell {
	return cellAt(r2.Vec{X: x, Y: y}, gridSize)
}

// GridToCanvas returns the plan position at the center of a grid cell.
func GridToCanvas(cell GridCell, gridSize float64) models.Coordinate {
	return coordinate(cellCenter(cell, gridSize))
}
