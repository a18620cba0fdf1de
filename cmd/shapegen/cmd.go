package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ava12/shapegen/config"
	"github.com/ava12/shapegen/gen"
	"github.com/ava12/shapegen/internal/logutil"
	"github.com/ava12/shapegen/langdef"
	"github.com/ava12/shapegen/lower"
	"github.com/ava12/shapegen/model"
)

type flags struct {
	configFile string
	pkg        string
	outDir     string
	backup     bool
	logLevel   string
	yaml       bool
}

// NewCLI returns root command writing reports to out.
func NewCLI(out io.Writer) *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:           "shapegen",
		Short:         "Generate syntax tree types, parser, visitor, and printer from a grammar",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVarP(&f.configFile, "config", "c", "", "config file, default is "+config.FileName+" next to grammar file")
	root.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	generateCmd := &cobra.Command{
		Use:   "generate <file>",
		Short: "Write generated Go files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateHandler(cmd, args[0], &f)
		},
	}
	generateCmd.Flags().StringVarP(&f.pkg, "package", "p", "", "Go package name, default is output dir name")
	generateCmd.Flags().StringVarP(&f.outDir, "out", "o", "", "output directory")
	generateCmd.Flags().BoolVar(&f.backup, "backup", false, "copy replaced files to *"+gen.BackupSuffix)

	diffCmd := &cobra.Command{
		Use:   "diff <file>",
		Short: "Show difference between files on disk and generated files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return diffHandler(cmd, args[0], &f)
		},
	}
	diffCmd.Flags().StringVarP(&f.pkg, "package", "p", "", "Go package name, default is output dir name")
	diffCmd.Flags().StringVarP(&f.outDir, "out", "o", "", "output directory")

	checkCmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Check grammar without generating files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkHandler(cmd, args[0], &f)
		},
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show lowered grammar model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspectHandler(cmd, args[0], &f)
		},
	}
	inspectCmd.Flags().BoolVar(&f.yaml, "yaml", false, "output YAML instead of tables")

	root.AddCommand(generateCmd, diffCmd, checkCmd, inspectCmd)
	return root
}

// setup loads config, applies flags, and installs default logger.
func setup(cmd *cobra.Command, file string, f *flags) (*config.Config, error) {
	var (
		c *config.Config
		e error
	)
	if f.configFile == "" {
		c, e = config.Lookup(file)
	} else {
		c, e = config.Load(f.configFile, false)
	}
	if e != nil {
		return nil, e
	}

	if f.pkg != "" {
		c.Package = f.pkg
	}
	if f.outDir != "" {
		c.OutDir = f.outDir
	}
	if f.backup {
		c.Backup = true
	}
	if f.logLevel != "" {
		c.LogLevel = f.logLevel
	}
	if e = c.Validate(); e != nil {
		return nil, e
	}

	level, _ := logutil.ParseLevel(c.LogLevel)
	slog.SetDefault(logutil.NewLogger(cmd.ErrOrStderr(), level))
	return c, nil
}

func load(file string) (*model.LangData, error) {
	src, e := os.ReadFile(file)
	if e != nil {
		return nil, e
	}

	g, e := langdef.ParseBytes(file, src)
	if e != nil {
		return nil, e
	}
	return lower.Lower(g)
}

func build(cmd *cobra.Command, file string, f *flags) (*config.Config, []gen.File, error) {
	c, e := setup(cmd, file, f)
	if e != nil {
		return nil, nil, e
	}

	d, e := load(file)
	if e != nil {
		return nil, nil, e
	}

	files, e := gen.Generate(d, c.Options(file))
	return c, files, e
}

func generateHandler(cmd *cobra.Command, file string, f *flags) error {
	c, files, e := build(cmd, file, f)
	if e == nil {
		e = gen.Write(c.OutDir, files, c.Backup)
	}
	if e != nil {
		return e
	}

	names := make([]string, 0, len(files))
	for _, file := range files {
		names = append(names, file.Name)
	}
	printSuccess(cmd.OutOrStdout(), fmt.Sprintf("package %s written to %s: %s", c.PackageName(), c.OutDir, strings.Join(names, ", ")))
	return nil
}

func diffHandler(cmd *cobra.Command, file string, f *flags) error {
	c, files, e := build(cmd, file, f)
	if e != nil {
		return e
	}

	diff, e := gen.Diff(c.OutDir, files)
	if e != nil {
		return e
	}

	if diff == "" {
		printSuccess(cmd.OutOrStdout(), "generated files are up to date")
	} else {
		fmt.Fprint(cmd.OutOrStdout(), diff)
	}
	return nil
}

func checkHandler(cmd *cobra.Command, file string, f *flags) error {
	if _, e := setup(cmd, file, f); e != nil {
		return e
	}

	d, e := load(file)
	if e != nil {
		return e
	}

	s := d.Summarize()
	printSuccess(cmd.OutOrStdout(), fmt.Sprintf("%s: start %s, %d keys, %d structs, %d sum types, %d lists",
		file, s.Start, len(s.Keys), len(s.Structs), len(s.Enums), len(s.Lists)))
	return nil
}

func inspectHandler(cmd *cobra.Command, file string, f *flags) error {
	if _, e := setup(cmd, file, f); e != nil {
		return e
	}

	d, e := load(file)
	if e != nil {
		return e
	}

	out := cmd.OutOrStdout()
	s := d.Summarize()
	if f.yaml {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if e = enc.Encode(s); e == nil {
			e = enc.Close()
		}
		return e
	}

	var keys [][]string
	for _, k := range s.Keys {
		keys = append(keys, []string{k.Key, k.Kind, k.Type, flag(k.Many)})
	}
	renderTable(out, []string{"KEY", "KIND", "TYPE", "MANY"}, keys)

	var members [][]string
	for _, st := range s.Structs {
		if len(st.Members) == 0 {
			members = append(members, []string{st.Name, "", "", "", flag(st.Owned)})
		}
		for _, m := range st.Members {
			attrs := make([]string, 0, 3)
			for _, a := range []struct {
				set  bool
				name string
			}{{m.Optional, "optional"}, {m.Negated, "negated"}, {m.Boxed, "boxed"}} {
				if a.set {
					attrs = append(attrs, a.name)
				}
			}
			members = append(members, []string{st.Name, m.Name, m.Kind, strings.Join(attrs, " "), flag(st.Owned)})
		}
	}
	renderTable(out, []string{"STRUCT", "MEMBER", "KIND", "ATTRS", "OWNED"}, members)

	var types [][]string
	for _, en := range s.Enums {
		kind := "sum"
		if en.Simple {
			kind = "simple"
		}
		types = append(types, []string{en.Name, kind, strings.Join(en.Items, " | "), flag(en.Owned)})
	}
	for _, l := range s.Lists {
		item := l.Item + "[]"
		if l.Separator != "" {
			item += " " + strconv.Quote(l.Separator)
		}
		types = append(types, []string{l.Name, "list", item, flag(l.Owned)})
	}
	renderTable(out, []string{"TYPE", "KIND", "ITEMS", "OWNED"}, types)
	return nil
}

func flag(v bool) string {
	if v {
		return "yes"
	}
	return ""
}

func renderTable(w io.Writer, header []string, data [][]string) {
	if len(data) == 0 {
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
	fmt.Fprintln(w)
}
