package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	pluginrpc "healthlog/internal/modules/plugin/adapter/out/rpc"
	"healthlog/internal/modules/record/domain"

	"github.com/hashicorp/go-plugin"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.Metadata, error) {
	return &pluginrpc.Metadata{
		Name:         "csvexport",
		Version:      "1.0.0",
		Capabilities: []string{"export"},
	}, nil
}

// Export flattens each record into one row. Meals and symptoms become one
// boolean column each. The "delimiter" option accepts a single character.
func (s *server) Export(_ context.Context, in *pluginrpc.ExportRequest) (*pluginrpc.ExportResponse, error) {
	records, err := domain.Decode(in.DocumentJSON)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if raw := in.Options["delimiter"]; raw != "" {
		r, size := utf8.DecodeRuneInString(raw)
		if size != len(raw) || r == '"' || r == '\n' || r == '\r' {
			return nil, fmt.Errorf("invalid delimiter %q", raw)
		}
		w.Comma = r
	}
	if err := w.Write(header()); err != nil {
		return nil, err
	}
	for _, record := range records {
		if err := w.Write(row(record)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return &pluginrpc.ExportResponse{
		FileExtension: "csv",
		ContentType:   "text/csv",
		Payload:       buf.Bytes(),
	}, nil
}

func header() []string {
	cols := []string{"date"}
	cols = append(cols, domain.MealKeys...)
	cols = append(cols, "sleepHours", "stress", "exercise", "bowel", "commute", "workCount", "relaxTime", "freelanceTime", "ahj")
	cols = append(cols, domain.SymptomKeys...)
	return cols
}

func row(r domain.Record) []string {
	cols := []string{r.Date}
	cols = append(cols, flags(domain.MealKeys, r.Factors.Meals.Selected())...)
	f := r.Factors
	cols = append(cols,
		strconv.Itoa(f.SleepHours),
		string(f.Stress),
		string(f.Exercise),
		string(f.Bowel),
		string(f.Commute),
		string(f.WorkCount),
		string(f.RelaxTime),
		string(f.FreelanceTime),
		string(f.AHJ),
	)
	cols = append(cols, flags(domain.SymptomKeys, r.Symptoms.Present())...)
	return cols
}

func flags(keys, set []string) []string {
	joined := "," + strings.Join(set, ",") + ","
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, strconv.FormatBool(strings.Contains(joined, ","+key+",")))
	}
	return out
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: pluginrpc.HandshakeConfig,
		Plugins:         pluginrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
