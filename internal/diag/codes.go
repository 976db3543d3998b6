package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Script structure
	ScrUnknownDirective Code = 1001
	ScrMissingArgument  Code = 1002
	ScrExtraArgument    Code = 1003
	ScrUnknownLabel     Code = 1004
	ScrBadKind          Code = 1005
	ScrLeaveAtRoot      Code = 1006
	ScrUnclosedScope    Code = 1007
	ScrLabelReused      Code = 1008

	// Tracker contract violations surfaced by the replay
	ScpLoopUnderflow Code = 2001
	ScpForeignTemp   Code = 2002
	ScpTempQueued    Code = 2003
	ScpContract      Code = 2004

	// Tracker observations
	ObsOpenLoop Code = 3001
)

var codeDescription = map[Code]string{
	UnknownCode:         "Unknown error",
	ScrUnknownDirective: "Unknown directive",
	ScrMissingArgument:  "Missing argument",
	ScrExtraArgument:    "Unexpected argument",
	ScrUnknownLabel:     "Unknown temp label",
	ScrBadKind:          "Unknown scope kind",
	ScrLeaveAtRoot:      "Leave at top level",
	ScrUnclosedScope:    "Scope left open at end of script",
	ScrLabelReused:      "Temp label still checked out",
	ScpLoopUnderflow:    "Loop stack underflow",
	ScpForeignTemp:      "Temp not minted by this scope",
	ScpTempQueued:       "Temp queued twice",
	ScpContract:         "Scope contract violation",
	ObsOpenLoop:         "Loop still open when scope rendered",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("SCR%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SCP%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
