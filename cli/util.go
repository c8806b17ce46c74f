package cli

import (
	"fmt"
	"net/http"

	"github.com/AlecAivazis/survey/v2"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"moul.io/http2curl"
)

func newTableWriter(format string, a ...any) table.Writer {
	writer := table.NewWriter()
	writer.SetStyle(table.StyleRounded)
	writer.Style().Title.Align = text.AlignCenter
	writer.Style().Format.Header = text.FormatDefault

	if format != "" {
		writer.SetTitle(fmt.Sprintf(format, a...))
	}

	return writer
}

func formatCurl(req *http.Request) (string, error) {
	curl, err := http2curl.GetCurlCommand(req)
	if err != nil {
		return "", err
	}
	return curl.String(), nil
}

func askConfirmation(prompt string, dflt bool) (bool, error) {
	ans := dflt

	err := survey.AskOne(&survey.Confirm{
		Message: prompt,
		Default: dflt,
	}, &ans)

	return ans, err
}
