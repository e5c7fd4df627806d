package commands

import (
	"fmt"
	"io"
)

// PrintUsage writes the usage text to w.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

const usageText = `
usage: asana2csv [flags] <WORKSPACE_NAME>

Exports every task of the named workspace to
<out-dir>/<root>_<WORKSPACE_NAME>_<YYYY-MM-DD>.csv

Flags:
  --env <file>       Read settings from a dotenv file (default .env)
  --out-dir <dir>    Output directory or s3://bucket/prefix
  --quiet            Do not print project names
  --debug            Print debug logs to stderr
  --version          Print version

Environment:
  ASANA_ACCESS_TOKEN   Personal access token (required)
  ASANA_OUT_DIR        Output directory (default .)
  ASANA_FILE_ROOT      Output file name prefix (default asana_tasks)
  ASANA_PAGE_SIZE      Records per request, 1-100 (default 100)
  ASANA_LOG_FORMAT     Debug log format: text or otel (default text)
`
