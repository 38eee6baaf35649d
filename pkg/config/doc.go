/*
Package config loads and layers chaingate configuration.

	+----------+   +-----------+   +-----------+   +---------------+   +-------+
	| defaults | < | user file | < | workspace | < | explicit file | < | flags |
	+----------+   +-----------+   +-----------+   +---------------+   +-------+

🎯 Purpose:
- Reads configuration layers from YAML, JSON or HCL files
- Stacks them so that each layer only overrides the keys it sets
- Validates the effective configuration

🔄 Flow:
1. Finds the user file and the nearest workspace file
2. Parses each layer with the parser registered for its extension
3. Applies the layers over Default()
4. Validates the result

📝 Keys:

	skip_none                      bool
	apply_only                     [rule ids]
	skip_only                      [rule ids]
	add_to_default_skip_list       [rule ids]
	remove_from_default_skip_list  [rule ids]
	show_diff                      bool (default true)
	format_on_save                 bool (default false)
	command                        string (default "npx chainsafe")
	languages                      [language ids]
	patterns                       [file globs]
	save_timeout                   duration (default 30s)
	diff_dir                       string

🔍 Example:

	cfg, err := config.Load(ctx, config.LoadOptions{DocumentDir: filepath.Dir(path)})
	if err != nil {
		return err
	}
	args := invocation.Resolve(cfg.Transform)
*/
package config
