package scoringservice

import "fmt"

// NoQuestionnaireForStationError reports a broken configuration: a
// questionnaire score was set for a station that has zero or several
// questionnaires. The multiplicity invariant is re-checked here as a second
// line of defense; the HTTP layer maps it to a server error, not a client
// error.
type NoQuestionnaireForStationError struct {
	Station string
	Count   int
}

func (e *NoQuestionnaireForStationError) Error() string {
	return fmt.Sprintf("station %q has %d questionnaires assigned, expected exactly 1", e.Station, e.Count)
}
