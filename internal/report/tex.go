package report

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TeXOptions controls the LaTeX tables.
type TeXOptions struct {
	Columns int // benchmark/value pairs per row, default 3
	Sort    SortBy
}

// TeXFileName returns the table file name for metric.
func TeXFileName(metric string) string {
	return fmt.Sprintf("src-code-analyze-results-%s.tex", metric)
}

var texEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// EscapeTeX escapes LaTeX special characters in s.
func EscapeTeX(s string) string {
	return texEscaper.Replace(s)
}

// WriteTeX writes one table per metric into dir and returns the written paths in
// metric order.
func WriteTeX(dir string, doc *Document, opts TeXOptions) ([]string, error) {
	if opts.Columns < 1 {
		opts.Columns = 3
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	pivot := Pivot(doc, opts.Sort)
	paths := make([]string, 0, pivot.Len())

	for el := pivot.Front(); el != nil; el = el.Next() {
		path := filepath.Join(dir, TeXFileName(el.Key))
		if err := writeTable(path, el.Key, el.Value, opts.Columns); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}

func writeTable(path, metric string, entries []Entry, columns int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	renderTable(w, metric, entries, columns)
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func renderTable(w *bufio.Writer, metric string, entries []Entry, columns int) {
	name := EscapeTeX(metric)

	colSpec := make([]string, columns)
	header := make([]string, columns)
	for i := range colSpec {
		colSpec[i] = "ll"
		header[i] = fmt.Sprintf(`\textbf{Benchmark} & \textbf{%s}`, name)
	}

	fmt.Fprintln(w, `\begin{table}[]`)
	fmt.Fprintf(w, "\\caption{src-code-analyze-result: %s}\n", name)
	fmt.Fprintln(w, `\adjustbox{max width=\textwidth}{`)
	fmt.Fprintf(w, "\\begin{tabular}{%s}\n", strings.Join(colSpec, "|"))
	fmt.Fprintln(w, `\toprule`)
	fmt.Fprintf(w, "%s \\\\ \\midrule\n", strings.Join(header, " & "))

	for _, row := range Chunk(entries, columns) {
		cells := make([]string, 0, columns)
		for _, e := range row {
			cells = append(cells, fmt.Sprintf(`\texttt{%s} & %.2f`, EscapeTeX(e.Benchmark), e.Value))
		}
		for len(cells) < columns {
			cells = append(cells, " & ")
		}
		fmt.Fprintf(w, "%s \\\\\n", strings.Join(cells, " & "))
	}

	fmt.Fprintln(w, `\bottomrule`)
	fmt.Fprintln(w, `\end{tabular}}`)
	fmt.Fprintln(w, `\end{table}`)
}
