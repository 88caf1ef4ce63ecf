package bridge

// Remote operation names.
const (
	OpGetApps          = "get_apps"
	OpAddApp           = "add_app"
	OpEditApp          = "edit_app"
	OpRemoveApp        = "remove_app"
	OpUndoRemoveApp    = "undo_remove_app"
	OpToggleAppEnabled = "toggle_app_enabled"
	OpTestLaunchApp    = "test_launch_app"
	OpReorderApps      = "reorder_apps"
	OpGetAppIcon       = "get_app_icon"
	OpGetCommonApps    = "get_common_apps"
	OpStartApp         = "start_app"
	OpStopApp          = "stop_app"

	OpGetProfiles           = "get_profiles"
	OpAddProfile            = "add_profile"
	OpRenameProfile         = "rename_profile"
	OpRemoveProfile         = "remove_profile"
	OpSetActiveProfile      = "set_active_profile"
	OpSetProfileColor       = "set_profile_color"
	OpSetProfileTriggers    = "set_profile_triggers"
	OpSetProfileTriggerMode = "set_profile_trigger_mode"
	OpGetProfileApps        = "get_profile_apps"
	OpDuplicateProfile      = "duplicate_profile"
	OpToggleProfileEnabled  = "toggle_profile_enabled"

	OpGetSettings         = "get_settings"
	OpSaveSettings        = "save_settings"
	OpGetAutostartEnabled = "get_autostart_enabled"
	OpSetAutostart        = "set_autostart"
	OpGetConfigPath       = "get_config_path"
	OpExportConfig        = "export_config"
	OpImportConfig        = "import_config"

	OpGetSessionHistory   = "get_session_history"
	OpClearSessionHistory = "clear_session_history"
	OpClearLog            = "clear_log"
	OpLaunchIRacing       = "launch_iracing"
	OpSetMonitoringPaused = "set_monitoring_paused"
	OpGetMonitoringPaused = "get_monitoring_paused"
	OpGetStatus           = "get_status"

	OpBrowseExe        = "browse_exe"
	OpBrowseDirectory  = "browse_directory"
	OpBrowseIRacingExe = "browse_iracing_exe"
	OpOpenFileDialog   = "open_file_dialog"
	OpSaveFileDialog   = "save_file_dialog"
	OpOpenConfigFolder = "open_config_folder"
	OpOpenLogFolder    = "open_log_folder"
	OpQuitApp          = "quit_app"
)
