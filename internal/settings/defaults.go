package settings

// Defaults returns a fresh copy of the compiled-in settings document. Keys
// missing from the persisted file are filled from here on every load.
func Defaults() map[string]any {
	return map[string]any{
		"general": map[string]any{
			"startup_with_system":    false,
			"minimize_to_tray":       true,
			"notification_sounds":    true,
			"save_dictation_history": true,
			"max_history_items":      100,
			"theme":                  "system",
			"log_level":              "INFO",
		},
		"hotkeys": map[string]any{
			"toggle_dictation": "super+h",
			"pause_dictation":  "ctrl+space",
			"cancel_dictation": "escape",
		},
		"speech_recognition": map[string]any{
			"engine":                  "vosk",
			"language":                "pt-BR",
			"auto_punctuation":        true,
			"sensitivity":             0.6,
			"timeout":                 5,
			"auto_stop_after_silence": 2.0,
			"capitalize_sentences":    true,
		},
		"ui": map[string]any{
			"floating_panel":  true,
			"panel_width":     500,
			"panel_height":    200,
			"opacity":         0.9,
			"show_confidence": false,
			"font_size":       12,
		},
		"advanced": map[string]any{
			"audio_device":     "default",
			"sample_rate":      16000,
			"debug_mode":       false,
			"keep_logs_days":   30,
			"max_log_size_mb":  5,
			"keyboard_backend": "auto",
		},
	}
}

// merge recursively applies overlay onto base: overlay values win, base
// values survive only where overlay lacks the key.
func merge(base, overlay map[string]any) {
	for key, value := range overlay {
		if overlaySub, ok := value.(map[string]any); ok {
			if baseSub, ok := base[key].(map[string]any); ok {
				merge(baseSub, overlaySub)
				continue
			}
		}
		base[key] = value
	}
}
