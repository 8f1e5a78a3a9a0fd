package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/fontfallback/core"
	"github.com/npillmayer/fontfallback/core/font"
	"github.com/npillmayer/fontfallback/core/font/fallback"
	"github.com/npillmayer/fontfallback/core/font/fontface"
	"github.com/npillmayer/fontfallback/core/font/fontregistry"
	"github.com/npillmayer/fontfallback/core/font/opentype/otquery"
	"github.com/npillmayer/fontfallback/core/locate/resources"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	xfont "golang.org/x/image/font"
)

// tracer traces with key 'fontfallback.fonts'
func tracer() tracing.Trace {
	return tracing.Select("fontfallback.fonts")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":              "go",
		"trace.fontfallback.fonts":     "Info",
		"trace.fontfallback.resources": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load, file path or family name")
	noadjust := flag.Bool("noadjust", false, "Do not adjust fallback metrics")
	prefix := flag.String("prefix", "", "Prefix for generated fallback families")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError)             // will set the correct level later
	pterm.Info.Println("Welcome to the font fallback CLI") // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	if *noadjust {
		conf.Set(fallback.ConfigAdjust, "false")
	}
	if *prefix != "" {
		conf.Set(fallback.ConfigPrefix, *prefix)
	}
	//
	// set up REPL
	repl, err := readline.New("fallback > ")
	if err != nil {
		tracer().Errorf("%s", err.Error())
		os.Exit(3)
	}
	intp := NewIntp(conf)
	intp.repl = repl
	//
	// load font to use
	if *fontname != "" {
		if err := intp.loadFont(*fontname); err != nil { // font name provided by flag
			core.UserError(err)
			os.Exit(4)
		}
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl      *readline.Instance
	resolver  *fallback.Resolver
	registry  *fontregistry.Registry
	font      *font.ScalableFont
	manual    []string
	fallbacks fallback.FontFallbacks
}

// NewIntp creates an interpreter with a resolver configured by conf.
func NewIntp(conf testconfig.Conf) *Intp {
	intp := &Intp{registry: fontregistry.GlobalRegistry()}
	intp.resolver = fallback.NewResolver(conf, func(err error) {
		pterm.Error.Println(core.UserMessage(err))
	})
	if resources.GoogleAPIKey() != "" {
		intp.registry.SetClassifier(resources.GoogleFontsClassifier{})
	}
	return intp
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		quit, err := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(core.UserMessage(err))
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Op codes of commands.
const (
	QUIT int = iota
	HELP
	LOAD
	CATEGORY
	MANUAL
	RESOLVE
	CSS
	METRICS
)

// Command is a parsed input line.
type Command struct {
	code int
	arg  string
}

func parseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	verb, arg, _ := strings.Cut(line, " ")
	command := Command{arg: strings.TrimSpace(arg)}
	switch strings.ToLower(verb) {
	case "quit", "exit":
		command.code = QUIT
	case "help", "?":
		command.code = HELP
	case "load":
		command.code = LOAD
		if command.arg == "" {
			return command, errors.New("usage: load <font file or family>")
		}
	case "category":
		command.code = CATEGORY
		if command.arg == "" {
			return command, errors.New("usage: category <sans-serif|serif>")
		}
	case "manual":
		command.code = MANUAL
	case "resolve":
		command.code = RESOLVE
	case "css":
		command.code = CSS
	case "metrics":
		command.code = METRICS
	default:
		return command, fmt.Errorf("unknown command: %s", verb)
	}
	tracer().Debugf("parse command = %v", command)
	return command, nil
}

func (intp *Intp) execute(cmd Command) (bool, error) {
	switch cmd.code {
	case QUIT:
		return true, nil
	case HELP:
		help(cmd.arg)
	case LOAD:
		return false, intp.loadFont(cmd.arg)
	case CATEGORY:
		if err := intp.checkFont(); err != nil {
			return false, err
		}
		intp.registry.SetCategory(intp.font.Family, cmd.arg)
		intp.fallbacks = nil
		pterm.Printfln("category of %s is %s", intp.font.Family, cmd.arg)
	case MANUAL:
		intp.manual = splitNames(cmd.arg)
		intp.fallbacks = nil
		pterm.Printfln("manual fallbacks: %v", intp.manual)
	case RESOLVE:
		if err := intp.resolve(); err != nil {
			return false, err
		}
		for i, fb := range intp.fallbacks {
			pterm.Printfln("[%d] %v", i, fb)
		}
	case CSS:
		if intp.fallbacks == nil {
			if err := intp.resolve(); err != nil {
				return false, err
			}
		}
		pterm.Println(fontface.Stylesheet(intp.fallbacks).String())
		pterm.Println(fontface.FontFamilyDeclaration(intp.font.Family, intp.fallbacks).String())
	case METRICS:
		if err := intp.checkFont(); err != nil {
			return false, err
		}
		intp.showMetrics()
	}
	return false, nil
}

func (intp *Intp) checkFont() error {
	if intp.font == nil {
		return core.Error(core.EMISSING, "no font loaded, use 'load <font>'")
	}
	return nil
}

func (intp *Intp) loadFont(fontname string) (err error) {
	intp.font, err = resources.ResolveFont(fontname, xfont.StyleNormal, xfont.WeightNormal).Font()
	if err != nil {
		return err
	}
	intp.fallbacks = nil
	pterm.Printfln("loaded font %s of family %s (%s)", intp.font.Fontname, intp.font.Family,
		otquery.FontType(intp.font))
	return nil
}

// resolve resolves an automatic fallback for the current font, followed by
// the manual fallbacks, if any.
func (intp *Intp) resolve() error {
	if err := intp.checkFont(); err != nil {
		return err
	}
	key := intp.font.Filepath
	auto := intp.resolver.ResolveFamily(intp.font.Family, key, intp.registry, intp.registry)
	intp.fallbacks = fallback.FontFallbacks{auto}
	if len(intp.manual) > 0 {
		manual := intp.resolver.Resolve(fallback.Request{ManualNames: intp.manual})
		intp.fallbacks = append(intp.fallbacks, manual)
	}
	return nil
}

func (intp *Intp) showMetrics() {
	m, err := intp.registry.Metrics(intp.font.Family)
	if err != nil || m == nil {
		pterm.Error.Printfln("no metrics for %s", intp.font.Family)
		return
	}
	data := pterm.TableData{
		{"metric", "value"},
		{"units per em", fmt.Sprintf("%.0f", m.UnitsPerEm)},
		{"ascent", fmt.Sprintf("%.0f", m.Ascent)},
		{"descent", fmt.Sprintf("%.0f", m.Descent)},
		{"line gap", fmt.Sprintf("%.0f", m.LineGap)},
		{"avg width", fmt.Sprintf("%.4f", m.AzAvgWidth)},
	}
	for k, v := range otquery.NameInfo(intp.font) {
		data = append(data, []string{k, v})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		tracer().Errorf("%s", err.Error())
	}
}

func splitNames(arg string) []string {
	if strings.TrimSpace(arg) == "" {
		return nil
	}
	return strings.Split(arg, ",")
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	switch strings.ToLower(topic) {
	case "manual":
		pterm.Info.Println("manual")
		pterm.Println(`
	manual <family>, <family>, …
	Sets a list of fallback families to be used as-is, in order.
	'manual' without arguments clears the list.
	`)
	case "category":
		pterm.Info.Println("category")
		pterm.Println(`
	category <sans-serif|serif>
	Sets the generic category of the loaded font. Without a category, it is
	looked up in the Google Fonts directory (requires GOOGLE_API_KEY).
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	load <path|family>    load a font file, system font or Google font
	category <category>   set the generic category of the font
	manual <a, b, …>      set manual fallback families
	resolve               resolve fallbacks for the font
	css                   print @font-face rules and font-family list
	metrics               print the font's metrics
	help [topic]          print help
	quit                  leave
	`)
	}
}
