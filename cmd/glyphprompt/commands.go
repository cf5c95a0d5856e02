package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/glyphprompt/internal/config/loader"
	"github.com/dshills/glyphprompt/internal/prompt"
	"github.com/dshills/glyphprompt/internal/termdevice"
)

func newSubstituteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "substitute [text...]",
		Short: "Replace action tags in text with sprite tokens",
		Long: `Replaces every tagged action name with the sprite token of its binding on
the active device. Arguments are joined with spaces; without arguments each
line of standard input is substituted.

Example:
  glyphprompt -c prompts.toml -d DualShock4GamepadHID substitute "Press [Player/Jump]"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := c.newEngine(termdevice.New())
			if err != nil {
				return err
			}
			defer engine.Terminate()

			out := cmd.OutOrStdout()
			if len(args) > 0 {
				fmt.Fprintln(out, engine.InsertPromptSprites(strings.Join(args, " ")))
				return nil
			}
			return substituteLines(engine, cmd.InOrStdin(), out)
		},
	}
}

func substituteLines(engine *prompt.Engine, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if _, err := fmt.Fprintln(out, engine.InsertPromptSprites(scanner.Text())); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func newResolveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <action>",
		Short: "Show the profile entries bound to an action",
		Long: `Resolves an action key ("Map/Action") against the effective profile and
prints every matching binding path with its sprite.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := c.newEngine(termdevice.New())
			if err != nil {
				return err
			}
			defer engine.Terminate()

			result, err := engine.Resolve(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "profile: %s (atlas %s)\n", result.Profile.DisplayName(), result.Profile.Atlas)
			if len(result.Entries) == 0 {
				fmt.Fprintln(out, "no entries")
				return nil
			}
			for _, entry := range result.Entries {
				fmt.Fprintf(out, "%s\t%s\n", entry.Path, entry.Sprite)
			}
			return nil
		},
	}
}

func newSpriteCmd(c *cli) *cobra.Command {
	var custom bool
	var extra bool

	cmd := &cobra.Command{
		Use:   "sprite <action|name>",
		Short: "Print the sprite token for an action or a custom sprite",
		Long: `Prints the sprite token of the first binding of an action. With --custom the
argument names a custom sprite of the effective profile, such as a picture of
the controller.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := c.newEngine(termdevice.New())
			if err != nil {
				return err
			}
			defer engine.Terminate()

			var sprite prompt.Sprite
			var ok bool
			if custom {
				sprite, ok = engine.DeviceSprite(args[0])
			} else {
				sprite, ok = engine.ActionSprite(args[0])
			}
			if !ok {
				return fmt.Errorf("no sprite for %q", args[0])
			}

			richText := ""
			if extra {
				if s, found := engine.Settings(); found {
					richText = s.RichText
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), sprite.Token(richText))
			return nil
		},
	}
	cmd.Flags().BoolVar(&custom, "custom", false, "Look up a custom sprite by name")
	cmd.Flags().BoolVar(&extra, "rich-text", false, "Append the rich_text setting inside the token")
	return cmd
}

func newCheckCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load and validate settings",
		Long: `Loads the settings with all overrides applied, validates them, builds the
binding and profile indices and reports duplicate identities. Environment
overrides in effect are listed. Nothing is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configs, err := c.provider()
			if err != nil {
				return err
			}
			bundle, err := configs.Load()
			if err != nil {
				return err
			}

			engine := prompt.New(configs, termdevice.New(), prompt.WithLogger(c.logger))
			defer engine.Terminate()
			if err := engine.Initialize(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, f := range bundle.Files {
				fmt.Fprintf(out, "file: %s\n", f)
			}
			for _, v := range loader.NewEnvLoader(loader.DefaultEnvPrefix).Variables() {
				if val, ok := os.LookupEnv(v); ok {
					fmt.Fprintf(out, "env: %s=%s\n", v, val)
				}
			}
			keys := engine.ActionKeys()
			fmt.Fprintf(out, "actions: %d\n", len(keys))
			for _, k := range keys {
				fmt.Fprintf(out, "  %s\n", k)
			}
			profiles := engine.Profiles()
			fmt.Fprintf(out, "profiles: %d\n", len(profiles))
			for _, p := range profiles {
				fmt.Fprintf(out, "  %s (atlas %s, %s)\n", p.DisplayName(), p.Atlas, strings.Join(p.Identities, ", "))
			}

			warnings := engine.Warnings()
			for _, w := range warnings {
				fmt.Fprintf(out, "warning: identity %q claimed by %s, kept by %s\n", w.Identity, w.Dropped, w.Kept)
			}
			if len(warnings) > 0 {
				fmt.Fprintf(out, "ok (%d warnings)\n", len(warnings))
				return nil
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
}
