package course

type TermSystem string

const (
	TermSemester  TermSystem = "semester"
	TermQuarter   TermSystem = "quarter"
	TermTrimester TermSystem = "trimester"
)

var AllTermSystems = []TermSystem{
	TermSemester,
	TermQuarter,
	TermTrimester,
}

func (t TermSystem) IsValid() bool {
	for _, v := range AllTermSystems {
		if t == v {
			return true
		}
	}
	return false
}
