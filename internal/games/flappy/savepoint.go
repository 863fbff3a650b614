package flappy

import "github.com/vovakirdan/flaptrivia/internal/quiz"

// SavePoint is a full copy of the resumable part of a session.
type SavePoint struct {
	Elapsed        float64
	Score          int
	Bird           Bird
	Pipes          []Pipe
	ProgressIndex  int
	Answered       quiz.IDSet
	LastQuestionAt float64
}

func (sp SavePoint) clone() SavePoint {
	sp.Pipes = append([]Pipe(nil), sp.Pipes...)
	sp.Answered = sp.Answered.Clone()
	return sp
}

// SaveLog is an append-only list of save points. Only Clear shrinks it.
type SaveLog struct {
	points []SavePoint
}

// Append stores a deep copy of sp.
func (l *SaveLog) Append(sp SavePoint) {
	l.points = append(l.points, sp.clone())
}

// Latest returns a deep copy of the most recent save point.
func (l *SaveLog) Latest() (SavePoint, bool) {
	if len(l.points) == 0 {
		return SavePoint{}, false
	}
	return l.points[len(l.points)-1].clone(), true
}

// Len returns the number of stored save points.
func (l *SaveLog) Len() int {
	return len(l.points)
}

// Clear drops every save point.
func (l *SaveLog) Clear() {
	l.points = nil
}
