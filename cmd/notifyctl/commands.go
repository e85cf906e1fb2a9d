package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sangkips/flight-notify-service/internal/dispatch"
	"github.com/sangkips/flight-notify-service/internal/domains/notifications"
	"github.com/sangkips/flight-notify-service/internal/domains/routes"
	"github.com/sangkips/flight-notify-service/internal/render"
)

// textFlag returns the literal flag value, or the contents of the file flag
// when that is set.
func textFlag(cmd *cobra.Command, literal, file string) (string, error) {
	if path, _ := cmd.Flags().GetString(file); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	v, _ := cmd.Flags().GetString(literal)
	return v, nil
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a template in Hebrew and English",
	Long: `Render a template in Hebrew and English. Template text given with --content
or --english is rendered locally; --template-id renders a stored template on the
server, which also applies the flight's stored route.`,
	Example: `  notifyctl render --content-file notice.txt --field flightNumber=12 --field newTime=18:30
  notifyctl render --template-id 1b9d... --field flightNumber=12 --convert-times`,
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := textFlag(cmd, "content", "content-file")
		if err != nil {
			return err
		}
		english, err := textFlag(cmd, "english", "english-file")
		if err != nil {
			return err
		}
		templateID, _ := cmd.Flags().GetString("template-id")
		fields, _ := cmd.Flags().GetStringToString("field")
		convert, _ := cmd.Flags().GetBool("convert-times")

		req := notifications.RenderRequest{
			TemplateID:     templateID,
			Content:        content,
			EnglishContent: english,
			Fields:         fields,
			ConvertTimes:   convert,
		}

		var resp notifications.RenderResponse
		if templateID != "" {
			err = newClient().postJSON("/render", req, &resp)
		} else {
			resp, err = renderLocal(cmd.Context(), req)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if resp.Hebrew != "" {
			fmt.Fprintf(out, "--- he ---\n%s\n", resp.Hebrew)
		}
		if resp.English != "" {
			fmt.Fprintf(out, "--- en ---\n%s\n", resp.English)
		}
		if resp.Route != nil {
			fmt.Fprintf(out, "route: %s %s -> %s (%s)\n", resp.Route.FlightNumber, resp.Route.DepartureCity, resp.Route.ArrivalCity, resp.Route.Airline)
		}
		return nil
	},
}

// renderLocal renders without a server, using the built-in airport table.
func renderLocal(ctx context.Context, req notifications.RenderRequest) (notifications.RenderResponse, error) {
	dir := render.NewDirectory()
	converter, err := render.NewConverter(dir, viper.GetString("base_timezone"))
	if err != nil {
		return notifications.RenderResponse{}, err
	}
	svc := notifications.NewService(notifications.Deps{
		Directory: dir,
		Converter: converter,
		Renderer: render.NewRenderer(dir,
			render.WithCarrier(viper.GetString("carrier_code")),
			render.WithReplaceAll(viper.GetBool("replace_all")),
		),
	})
	return svc.Render(ctx, req)
}

var sendBulkCmd = &cobra.Command{
	Use:   "send-bulk",
	Short: "Send a message to every contact in a CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		message, err := textFlag(cmd, "message", "message-file")
		if err != nil {
			return err
		}
		sms, _ := cmd.Flags().GetBool("sms")
		email, _ := cmd.Flags().GetBool("email")
		subject, _ := cmd.Flags().GetString("subject")
		flight, _ := cmd.Flags().GetString("flight-number")

		var resp struct {
			Success bool            `json:"success"`
			Results dispatch.Result `json:"results"`
			Error   string          `json:"error"`
		}
		err = newClient().upload("/send-bulk", file, map[string]string{
			"messageContent": message,
			"sendSMS":        strconv.FormatBool(sms),
			"sendEmail":      strconv.FormatBool(email),
			"subject":        subject,
			"flightNumber":   flight,
		}, &resp)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "contacts: %d, sms sent: %d, email sent: %d\n", resp.Results.Total, resp.Results.SMSSent, resp.Results.EmailSent)
		for _, e := range resp.Results.Errors {
			fmt.Fprintln(out, "  "+e)
		}
		return nil
	},
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Manage flight routes",
}

var routesImportCmd = &cobra.Command{
	Use:   "import <file.csv|file.xlsx>",
	Short: "Import flight routes from a CSV or spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var result routes.ImportResult
		if err := newClient().upload("/routes/import", args[0], nil, &result); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d routes\n", result.Imported)
		return nil
	},
}

func init() {
	renderCmd.Flags().String("template-id", "", "stored template to render")
	renderCmd.Flags().String("content", "", "Hebrew template text")
	renderCmd.Flags().String("content-file", "", "read Hebrew template text from a file")
	renderCmd.Flags().String("english", "", "English template text")
	renderCmd.Flags().String("english-file", "", "read English template text from a file")
	renderCmd.Flags().StringToString("field", nil, "field value as name=value, repeatable")
	renderCmd.Flags().Bool("convert-times", false, "convert times to the departure airport's zone")

	sendBulkCmd.Flags().String("file", "", "contacts CSV (name, phone, email)")
	sendBulkCmd.Flags().String("message", "", "message text")
	sendBulkCmd.Flags().String("message-file", "", "read message text from a file")
	sendBulkCmd.Flags().Bool("sms", true, "send SMS")
	sendBulkCmd.Flags().Bool("email", false, "send email")
	sendBulkCmd.Flags().String("subject", "", "email subject")
	sendBulkCmd.Flags().String("flight-number", "", "flight the notice is about, for history")
	_ = sendBulkCmd.MarkFlagRequired("file")

	routesCmd.AddCommand(routesImportCmd)
}
