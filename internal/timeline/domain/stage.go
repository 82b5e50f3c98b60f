// Package domain defines the case timeline entities and the stage state machine.
package domain

// Stage is a step in the case journey. Stages form a fixed ordered catalog;
// a case may skip stages forward but never moves backward.
type Stage string

const (
	StageIntake    Stage = "INTAKE"
	StageAnalysis  Stage = "ANALYSIS"
	StagePetition  Stage = "PETITION"
	StageFiled     Stage = "FILED"
	StageDiscovery Stage = "DISCOVERY"
	StageHearing   Stage = "HEARING"
	StageDecision  Stage = "DECISION"
	StageAppeal    Stage = "APPEAL"
	StageClosed    Stage = "CLOSED"
)

// stageOrder is the canonical journey. Progress percentage and the
// monotonic advance rule are both defined by position in this slice.
var stageOrder = []Stage{
	StageIntake,
	StageAnalysis,
	StagePetition,
	StageFiled,
	StageDiscovery,
	StageHearing,
	StageDecision,
	StageAppeal,
	StageClosed,
}

// stageLabels maps stage codes to the client-facing display labels.
var stageLabels = map[Stage]string{
	StageIntake:    "Triagem Inicial",
	StageAnalysis:  "Análise Jurídica",
	StagePetition:  "Petição Elaborada",
	StageFiled:     "Protocolo Realizado",
	StageDiscovery: "Fase Instrutória",
	StageHearing:   "Audiência Agendada",
	StageDecision:  "Sentença Proferida",
	StageAppeal:    "Recurso Interposto",
	StageClosed:    "Caso Encerrado",
}

// Stages returns the ordered stage catalog.
func Stages() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder)
	return out
}

// ParseStage converts a string into a Stage.
// Returns ErrUnknownStage for codes outside the catalog.
func ParseStage(s string) (Stage, error) {
	for _, stage := range stageOrder {
		if Stage(s) == stage {
			return stage, nil
		}
	}
	return "", ErrUnknownStage
}

// Index returns the position of the stage in the journey, or -1 when the
// stage is outside the catalog.
func (s Stage) Index() int {
	for i, stage := range stageOrder {
		if s == stage {
			return i
		}
	}
	return -1
}

// Label returns the client-facing display label for the stage.
func (s Stage) Label() string {
	return stageLabels[s]
}

// ProgressPercent returns how far along the journey the stage is, in integer
// percent. The first stage is 0, the last is 100, intermediate stages divide
// the range evenly with the fraction truncated.
func (s Stage) ProgressPercent() int {
	idx := s.Index()
	if idx < 0 {
		return 0
	}
	return idx * 100 / (len(stageOrder) - 1)
}
