package engine

// Automation is a sequence of per-sample snapshots, as delivered by a host
// with sample-accurate automation. Offsets past the end repeat the last
// snapshot. An Automation must not be empty.
type Automation []Params

// At implements ParamSource.
func (a Automation) At(offset int) *Params {
	if offset >= len(a) {
		offset = len(a) - 1
	}
	return &a[offset]
}
