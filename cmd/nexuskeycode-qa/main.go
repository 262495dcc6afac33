// nexuskeycode-qa batch-generates Full protocol credit keycodes for an
// integration test plan: it reads a CSV of test steps and writes a CSV of
// the same steps annotated with the rendered keycode, using the same
// column layout as the nexus-keycode Python package's integration test
// keycode generator so existing test plans keep working.
//
// Each row is still just "parameters in, keycode string out" through the
// same generator façade nexuskeycodectl uses; nexuskeycode-qa only adds the
// CSV batching and running metrics a QA engineer driving hundreds of rows
// wants.
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/angaza/nexus-keycode-go/internal/config"
	"github.com/angaza/nexus-keycode-go/internal/fullcode"
	"github.com/angaza/nexus-keycode-go/internal/generator"
	"github.com/angaza/nexus-keycode-go/internal/genmetrics"
)

// inputColumns are the required CSV header columns of the input test plan.
var inputColumns = []string{"step_number", "nexus_id", "message_id", "keycode_type", "hours", "secret_key"}

// outputColumns are the CSV header columns written to the output file: the
// input columns plus the rendered keycode.
var outputColumns = append(append([]string{}, inputColumns...), "keycode")

var errMissingColumn = errors.New("nexuskeycode-qa: input CSV missing required column")

func main() {
	os.Exit(run())
}

func run() int {
	inPath := flag.String("in", "", "input CSV test plan path (required)")
	outPath := flag.String("out", "", "output CSV path (required)")
	configPath := flag.String("config", "", "path to configuration file (YAML, optional)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *inPath == "" || *outPath == "" {
		logger.Error("both -in and -out are required")
		return 1
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Error("load configuration", slog.String("error", err.Error()))
			return 1
		}
		cfg = loaded
	}

	reg := prometheus.NewRegistry()
	collector := genmetrics.NewCollector(reg)

	in, err := os.Open(*inPath)
	if err != nil {
		logger.Error("open input CSV", slog.String("error", err.Error()))
		return 1
	}
	defer in.Close()

	out, err := os.Create(*outPath)
	if err != nil {
		logger.Error("create output CSV", slog.String("error", err.Error()))
		return 1
	}
	defer out.Close()

	renderOpts := fullcode.RenderOptions{
		Prefix:    cfg.Full.Prefix,
		Suffix:    cfg.Full.Suffix,
		Separator: cfg.Full.Separator,
		GroupLen:  cfg.Full.GroupLen,
	}

	rows, err := generateBatch(in, out, renderOpts, collector, logger)
	if err != nil {
		logger.Error("generate batch", slog.String("error", err.Error()))
		return 1
	}

	logger.Info("nexuskeycode-qa finished", slog.Int("rows", rows))
	logMetricsSummary(logger, reg)

	return 0
}

// generateBatch reads the input CSV test plan from r, generates a Full
// protocol credit keycode per row, and writes the annotated rows to w.
// Returns the number of rows processed.
func generateBatch(r io.Reader, w io.Writer, renderOpts fullcode.RenderOptions, collector *genmetrics.Collector, logger *slog.Logger) (int, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}

	colIndex, err := indexColumns(header)
	if err != nil {
		return 0, err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(outputColumns); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	rows := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("read row %d: %w", rows+1, err)
		}

		keycode, genErr := generateRow(record, colIndex, renderOpts)
		if genErr != nil {
			collector.RecordError("full", errorKind(genErr))
			logger.Warn("row rejected", slog.Int("row", rows+1), slog.String("error", genErr.Error()))
			keycode = ""
		} else {
			collector.RecordKeycode("full", record[colIndex["keycode_type"]])
		}

		out := append(append([]string{}, record...), keycode)
		if err := writer.Write(out); err != nil {
			return rows, fmt.Errorf("write row %d: %w", rows+1, err)
		}

		rows++
	}

	writer.Flush()
	return rows, writer.Error()
}

// generateRow builds and renders a single Full protocol credit keycode
// from one CSV row.
func generateRow(record []string, col map[string]int, renderOpts fullcode.RenderOptions) (string, error) {
	id, err := strconv.ParseUint(record[col["message_id"]], 10, 32)
	if err != nil {
		return "", fmt.Errorf("parse message_id %q: %w", record[col["message_id"]], err)
	}

	hours := 0
	if h := record[col["hours"]]; h != "" {
		parsed, err := strconv.Atoi(h)
		if err != nil {
			return "", fmt.Errorf("parse hours %q: %w", h, err)
		}
		hours = parsed
	}

	secretKey, err := parseSecretKeyHex(record[col["secret_key"]])
	if err != nil {
		return "", err
	}

	msg, err := generator.CreateFullCreditMessage(
		uint32(id),
		generator.CreditMessageType(record[col["keycode_type"]]),
		secretKey,
		hours,
	)
	if err != nil {
		return "", err
	}

	return msg.ToKeycode(renderOpts)
}

// errorKind maps a construction error to the stable sentinel name used as
// the metrics error_kind label, keeping label cardinality bounded no matter
// what values a rejected row carried.
func errorKind(err error) string {
	switch {
	case errors.Is(err, generator.ErrUnsupportedCreditMessageType):
		return "UnsupportedMessageType"
	case errors.Is(err, fullcode.ErrOutOfRangeID):
		return "OutOfRangeID"
	case errors.Is(err, fullcode.ErrOutOfRangeBodyValue):
		return "OutOfRangeBodyValue"
	case errors.Is(err, fullcode.ErrInvalidKeyLength), errors.Is(err, errInvalidSecretKeyHex):
		return "InvalidKeyLength"
	default:
		return "InvalidRow"
	}
}

var errInvalidSecretKeyHex = errors.New("nexuskeycode-qa: secret_key column must be exactly 32 lowercase hex characters")

// parseSecretKeyHex validates and decodes a 32-lowercase-hex-character
// secret key column into its 16 raw bytes.
func parseSecretKeyHex(s string) ([]byte, error) {
	if len(s) != 32 {
		return nil, fmt.Errorf("key has %d characters: %w", len(s), errInvalidSecretKeyHex)
	}
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')) {
			return nil, fmt.Errorf("key contains %q: %w", r, errInvalidSecretKeyHex)
		}
	}
	return hex.DecodeString(s)
}

// indexColumns maps each required column name to its position in header.
func indexColumns(header []string) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		pos[name] = i
	}
	for _, required := range inputColumns {
		if _, ok := pos[required]; !ok {
			return nil, fmt.Errorf("%w: %s", errMissingColumn, required)
		}
	}
	return pos, nil
}

// logMetricsSummary renders the collected Prometheus metrics as text and
// logs them, giving a QA engineer a per-run summary without standing up a
// scrape endpoint for a one-shot batch tool.
func logMetricsSummary(logger *slog.Logger, reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		logger.Warn("gather metrics", slog.String("error", err.Error()))
		return
	}

	var buf bytes.Buffer
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			logger.Warn("encode metric family", slog.String("name", mf.GetName()), slog.String("error", err.Error()))
		}
	}

	logger.Info("metrics collected", slog.Int("families", len(families)), slog.String("text", buf.String()))
}
