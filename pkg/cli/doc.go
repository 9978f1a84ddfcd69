/*
Package cli provides command-line interface utilities for the mci command.

The cli package includes output formatters, a plain-text table renderer,
typed command errors, and signal handling helpers shared by the
subcommands.

Output Formatting:

The cli package supports multiple output formats (text, JSON, YAML) for
displaying command results:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Tables:

For aligned columnar output, build a Table and render it:

	table := cli.NewTable("NAME", "TAGS", "DESCRIPTION")
	table.AddRow("get_weather", "api", "Fetch weather data")
	table.Render(os.Stdout)
*/
package cli
