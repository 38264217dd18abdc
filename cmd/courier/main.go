// Command courier sends a single email through the configured transport.
//
// Configuration comes from MAILER_* environment variables, optionally loaded
// from a .env file. Flags describe the message:
//
//	courier -to john@example.com -subject Welcome -html-template welcome -data '{"name":"John"}'
//
// With -preview the message goes to an in-memory recorder and is served over
// HTTP together with the delivery metrics until the process is interrupted.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/courier/pkg/i18n"
	"github.com/dmitrymomot/courier/pkg/logger"
	"github.com/dmitrymomot/courier/pkg/mailer"
	"github.com/dmitrymomot/courier/pkg/message"
	"github.com/dmitrymomot/courier/pkg/metrics"
	"github.com/dmitrymomot/courier/pkg/transport/recorder"
	"github.com/dmitrymomot/courier/pkg/view"
	"github.com/dmitrymomot/courier/pkg/view/markdown"
)

var errNoRecipient = errors.New("courier: -to is required")

type options struct {
	to           string
	from         string
	subject      string
	text         string
	htmlTemplate string
	textTemplate string
	data         string
	locale       string
	views        string
	renderer     string
	translations string
	preview      string
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("courier", flag.ContinueOnError)
	fs.StringVar(&o.to, "to", "", "comma-separated recipients")
	fs.StringVar(&o.from, "from", "", "sender address (defaults to the From default header)")
	fs.StringVar(&o.subject, "subject", "", "message subject")
	fs.StringVar(&o.text, "text", "", "plain text body, used when no template is given")
	fs.StringVar(&o.htmlTemplate, "html-template", "", "view rendered into the HTML body")
	fs.StringVar(&o.textTemplate, "text-template", "", "view rendered into the text body")
	fs.StringVar(&o.data, "data", "", "template variables as a JSON object")
	fs.StringVar(&o.locale, "locale", "", "locale to render with")
	fs.StringVar(&o.views, "views", "", "directory the views are read from (default: working directory)")
	fs.StringVar(&o.renderer, "renderer", "", `alternate view renderer: "html" or "markdown"`)
	fs.StringVar(&o.translations, "translations", "", "directory with {locale}/{namespace}.yaml translation files")
	fs.StringVar(&o.preview, "preview", "", "serve the message on this address instead of sending it")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if o.to == "" {
		return options{}, errNoRecipient
	}
	return o, nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// The .env file is optional.
	_ = godotenv.Load()

	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	var (
		logCfg    logger.Config
		sentryCfg logger.SentryConfig
	)
	if err := env.Parse(&logCfg); err != nil {
		return fmt.Errorf("logger config: %w", err)
	}
	if err := env.Parse(&sentryCfg); err != nil {
		return fmt.Errorf("sentry config: %w", err)
	}
	log := logger.NewWithSentry(logCfg, sentryCfg)

	cfg, err := mailer.LoadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reg := prometheus.NewRegistry()
	mailerOpts := []mailer.Option{
		mailer.WithLogger(log),
		mailer.WithObserver(metrics.New(reg)),
	}
	if opts.views != "" {
		mailerOpts = append(mailerOpts, mailer.WithViewFS(os.DirFS(opts.views)))
	}
	switch opts.renderer {
	case "":
	case "html":
		mailerOpts = append(mailerOpts, mailer.WithViewOptions(view.WithRenderer(view.NewHTMLRenderer())))
	case "markdown":
		mailerOpts = append(mailerOpts, mailer.WithViewOptions(view.WithRenderer(markdown.New())))
	default:
		return fmt.Errorf("courier: unknown renderer %q", opts.renderer)
	}

	if opts.translations != "" {
		catalog, err := i18n.New(i18n.WithYAMLDir(os.DirFS(opts.translations)))
		if err != nil {
			return err
		}
		mailerOpts = append(mailerOpts, mailer.WithViewOptions(view.WithTranslator(catalog)))
	}

	var rec *recorder.Transport
	if opts.preview != "" {
		rec = recorder.New()
		mailerOpts = append(mailerOpts, mailer.WithTransport(rec))
	}

	m := mailer.New(cfg, mailerOpts...)

	msg, err := buildMessage(opts)
	if err != nil {
		return err
	}
	if err := m.Send(ctx, msg, nil); err != nil {
		return err
	}
	log.InfoContext(ctx, "email sent", slog.String("to", opts.to), slog.String("subject", opts.subject))

	if rec != nil {
		return serve(ctx, opts.preview, rec, reg, log)
	}
	return nil
}

func buildMessage(o options) (*message.TemplatedEmail, error) {
	msg := message.NewTemplated()

	if o.from != "" {
		if err := msg.From(o.from); err != nil {
			return nil, fmt.Errorf("courier: invalid -from: %w", err)
		}
	}
	if err := msg.To(splitList(o.to)...); err != nil {
		return nil, fmt.Errorf("courier: invalid -to: %w", err)
	}
	if o.subject != "" {
		msg.SetSubject(o.subject)
	}

	if o.data != "" {
		var data map[string]any
		if err := json.Unmarshal([]byte(o.data), &data); err != nil {
			return nil, fmt.Errorf("courier: invalid -data: %w", err)
		}
		msg.SetContext(data)
	}

	msg.SetTextTemplate(o.textTemplate)
	msg.SetHTMLTemplate(o.htmlTemplate)
	msg.SetLocale(o.locale)
	if o.textTemplate == "" && o.htmlTemplate == "" {
		msg.SetTextBody(o.text)
	}

	return msg, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
