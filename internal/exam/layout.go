package exam

import (
	"time"

	"github.com/abhisek/examprep/internal/bank"
)

// BlockKind identifies one of the five fixed exam sections.
type BlockKind string

const (
	BlockReadingLiteracy BlockKind = "reading_literacy"
	BlockMathLiteracy    BlockKind = "math_literacy"
	BlockHistory         BlockKind = "history"
	BlockProfile1        BlockKind = "profile1"
	BlockProfile2        BlockKind = "profile2"
)

// BlockSpec is the fixed allocation for a block.
type BlockSpec struct {
	Kind     BlockKind
	Title    string
	Required int
	Profile  bool
}

// Layout is the ordered block allocation of every exam.
var Layout = [NumBlocks]BlockSpec{
	{Kind: BlockReadingLiteracy, Title: "Reading Literacy", Required: bank.ReadingLiteracyCount},
	{Kind: BlockMathLiteracy, Title: "Mathematical Literacy", Required: bank.MathLiteracyCount},
	{Kind: BlockHistory, Title: "History", Required: bank.HistoryCount},
	{Kind: BlockProfile1, Title: "Profile Subject 1", Required: ProfileCount, Profile: true},
	{Kind: BlockProfile2, Title: "Profile Subject 2", Required: ProfileCount, Profile: true},
}

const (
	// NumBlocks is the number of blocks in an exam.
	NumBlocks = 5

	// ProfileCount is the question count of each profile block.
	ProfileCount = 35

	// TotalQuestions is the full allocation across all blocks.
	TotalQuestions = bank.ReadingLiteracyCount + bank.MathLiteracyCount + bank.HistoryCount + 2*ProfileCount

	// DefaultDuration is the countdown budget of a sitting.
	DefaultDuration = 240 * time.Minute

	// HistoryLimit caps the number of results kept in history.
	HistoryLimit = 20
)
