package appointment

import "time"

// Overlaps compara dois intervalos semiabertos [start, end) e
// [otherStart, otherEnd). Encostar na borda não é conflito.
func Overlaps(start, end, otherStart, otherEnd time.Time) bool {
	return start.Before(otherEnd) && otherStart.Before(end)
}

// ResolveEnd usa a duração do serviço quando o término não foi informado.
func ResolveEnd(start time.Time, end *time.Time, duration time.Duration) time.Time {
	if end != nil && !end.IsZero() {
		return *end
	}
	return start.Add(duration)
}
