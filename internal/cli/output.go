package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/playerstats/internal/domain/playerstats"
	"github.com/riskibarqy/playerstats/internal/usecase"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := sonic.Marshal(map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		})
		fmt.Fprintln(o.errOut, string(data))
	} else {
		fmt.Fprintf(o.errOut, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := sonic.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.out, string(data))
	} else {
		fmt.Fprintln(o.out, msg)
	}
}

func (o *Output) printJSON(data any) {
	encoded, err := sonic.ConfigStd.MarshalIndent(data, "", "  ")
	if err != nil {
		o.PrintError(err)
		return
	}
	fmt.Fprintln(o.out, string(encoded))
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case []playerstats.View:
		o.printViews(v)
	case playerstats.Record:
		o.printRecord(v)
	case usecase.StatsSnapshot:
		o.printStats(v)
	case usecase.ConnectionReport:
		o.printConnection(v)
	case usecase.StorageInfo:
		o.printInfo(v)
	case usecase.ImportResult:
		o.printImport(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printViews(views []playerstats.View) {
	if len(views) == 0 {
		fmt.Fprintln(o.out, "No records")
		return
	}
	tw := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPLAYER\tTOTAL\tL1\tL2\tL3\tGAMES\tCORRECT\tWRONG\tLAST PLAYED")
	for _, v := range views {
		r := v.Record
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%s\n",
			r.ID, r.PlayerName, r.TotalScore, r.Level1Score, r.Level2Score, r.Level3Score,
			r.GamePlayed, r.CorrectAnswers, r.WrongAnswers, formatTime(r.LastPlayed))
	}
	_ = tw.Flush()
}

func (o *Output) printRecord(r playerstats.Record) {
	fmt.Fprintf(o.out, "Record: %s\n", r.ID)
	fmt.Fprintf(o.out, "Player: %s\n", r.PlayerName)
	fmt.Fprintf(o.out, "Total Score: %d (L1 %d, L2 %d, L3 %d)\n", r.TotalScore, r.Level1Score, r.Level2Score, r.Level3Score)
	fmt.Fprintf(o.out, "Games Played: %d\n", r.GamePlayed)
	fmt.Fprintf(o.out, "Answers: %d correct, %d wrong\n", r.CorrectAnswers, r.WrongAnswers)
	fmt.Fprintf(o.out, "Last Played: %s\n", formatTime(r.LastPlayed))
	fmt.Fprintf(o.out, "Updated At: %s\n", formatTime(r.UpdatedAt))
}

func (o *Output) printStats(s usecase.StatsSnapshot) {
	status := "offline"
	if s.IsOnline {
		status = "online"
	}
	fmt.Fprintf(o.out, "Status: %s\n", status)
	fmt.Fprintf(o.out, "Mode: %s\n", s.Mode)
	fmt.Fprintf(o.out, "Players: %d\n", s.TotalPlayers)
	if s.TableName != "" {
		fmt.Fprintf(o.out, "Table: %s\n", s.TableName)
	}
	if s.LastSync != "" {
		fmt.Fprintf(o.out, "Last Sync: %s\n", s.LastSync)
	}
	if s.Error != "" {
		fmt.Fprintf(o.out, "Error: %s\n", s.Error)
	}
}

func (o *Output) printConnection(r usecase.ConnectionReport) {
	result := "FAILED"
	if r.Success {
		result = "OK"
	}
	fmt.Fprintf(o.out, "Connection: %s\n", result)
	fmt.Fprintf(o.out, "Message: %s\n", r.Message)
	fmt.Fprintf(o.out, "Checked At: %s\n", r.Timestamp)
}

func (o *Output) printInfo(i usecase.StorageInfo) {
	configured := "no"
	if i.Configured {
		configured = "yes"
	}
	fmt.Fprintf(o.out, "Mode: %s\n", i.Mode)
	fmt.Fprintf(o.out, "Active Service: %s\n", i.ActiveService)
	fmt.Fprintf(o.out, "Configured: %s\n", configured)
}

func (o *Output) printImport(r usecase.ImportResult) {
	fmt.Fprintf(o.out, "Created: %d\n", r.CreatedCount)
	fmt.Fprintf(o.out, "Failed: %d\n", r.FailedCount)
	for _, item := range r.Items {
		if item.Status == usecase.ImportStatusFailed {
			fmt.Fprintf(o.out, "  - item %d: %s\n", item.Index, item.Message)
		}
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return playerstats.FormatTimestamp(t)
}
