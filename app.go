package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/exec"
	goruntime "runtime"
	"sync"

	"github.com/posthog/posthog-go"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"mapstudio-desktop/internal/config"
	"mapstudio-desktop/internal/datauri"
	"mapstudio-desktop/internal/delivery"
	"mapstudio-desktop/internal/export"
	"mapstudio-desktop/internal/exporters"
	"mapstudio-desktop/internal/geometry"
	"mapstudio-desktop/internal/mapstate"
)

// Linker flags
var (
	PostHogKey  string
	PostHogHost string
	AppVersion  string = "0.0.0-dev"
)

// ExportRequest carries the recognized options for one export action,
// constructed by the frontend per request.
type ExportRequest struct {
	SelectedDataset string `json:"selectedDataset"`
	DataType        string `json:"dataType"`
	Filtered        bool   `json:"filtered"`
	Ratio           string `json:"ratio"`
	Resolution      string `json:"resolution"`
	UserMapboxToken string `json:"userMapboxToken"`
	Mode            string `json:"mode"`
}

// ExportResult reports what an export action delivered.
type ExportResult struct {
	Exported int      `json:"exported"`
	Files    []string `json:"files"`
}

// PresetInfo describes one geometry preset for the frontend.
type PresetInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ExportPresets enumerates the geometry presets available to the export
// image dialog.
type ExportPresets struct {
	Ratios      []PresetInfo `json:"ratios"`
	Resolutions []PresetInfo `json:"resolutions"`
}

// App struct
type App struct {
	ctx      context.Context
	settings *config.UserSettings
	presets  *geometry.Registry
	sink     *delivery.DirectorySink
	state    *mapstate.State
	mu       sync.Mutex
	devMode  bool // Enable verbose logging in dev mode only
	phClient posthog.Client
}

// NewApp creates a new App application struct
func NewApp() *App {
	// Load user settings
	settings, err := config.LoadSettings()
	if err != nil {
		log.Printf("Failed to load settings, using defaults: %v", err)
		settings = config.DefaultSettings()
	}
	log.Printf("Settings loaded from: %s", config.GetSettingsPath())

	sink, err := delivery.NewDirectorySink(settings.DownloadPath)
	if err != nil {
		log.Printf("Failed to prepare download directory: %v", err)
	}

	// Initialize PostHog
	var phClient posthog.Client
	if PostHogKey != "" {
		phConfig := posthog.Config{
			Endpoint: PostHogHost,
		}
		client, err := posthog.NewWithConfig(PostHogKey, phConfig)
		if err != nil {
			log.Printf("Failed to initialize PostHog: %v", err)
		} else {
			phClient = client
		}
	}

	return &App{
		settings: settings,
		presets:  geometry.NewRegistry(),
		sink:     sink,
		state:    &mapstate.State{},
		phClient: phClient,
	}
}

// startup is called when the app starts
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	// Track app start
	a.TrackEvent("app_started", map[string]interface{}{
		"version": a.GetAppVersion(),
		"os":      goruntime.GOOS,
		"arch":    goruntime.GOARCH,
	})
}

// TrackEvent sends an event to PostHog
func (a *App) TrackEvent(event string, props map[string]interface{}) {
	if a.phClient != nil {
		a.phClient.Enqueue(posthog.Capture{
			DistinctId: a.settings.InstallID,
			Event:      event,
			Properties: props,
		})
	}
}

// Shutdown cleans up resources
func (a *App) Shutdown(ctx context.Context) {
	if a.phClient != nil {
		a.phClient.Close()
	}
}

// GetAppVersion returns the current application version
func (a *App) GetAppVersion() string {
	return AppVersion
}

// emitLog sends a log message to the frontend (only in dev mode)
func (a *App) emitLog(message string) {
	if a.devMode {
		wailsRuntime.EventsEmit(a.ctx, "log", message)
	}
}

// SetMapState replaces the backend's application-state snapshot with the one
// the frontend pushes. The captured preview survives the replacement so a
// state update between capture and export does not lose the image.
func (a *App) SetMapState(stateJSON string) error {
	var state mapstate.State
	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		return fmt.Errorf("failed to parse map state: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if state.UI.ExportImage.ImageDataURI == "" {
		state.UI.ExportImage = a.state.UI.ExportImage
	}
	a.state = &state
	return nil
}

// SetMapPreview stores the rasterized map preview the frontend capture
// library produced. The URI is validated up front so a malformed capture
// fails here rather than at export time.
func (a *App) SetMapPreview(dataURI string) error {
	if _, err := datauri.Parse(dataURI); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.UI.ExportImage.ImageDataURI = dataURI
	return nil
}

// ClearMapPreview discards the captured preview.
func (a *App) ClearMapPreview() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.UI.ExportImage.ImageDataURI = ""
}

// snapshot returns the state pointer under lock. Export reads the snapshot
// without further locking; the frontend must not push state mid-export
// (single-writer UI event model).
func (a *App) snapshot() *mapstate.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// GetExportImageSize derives the output dimensions for the export image
// dialog. Returns nil when the map surface has no area yet.
func (a *App) GetExportImageSize(mapWidth, mapHeight int, ratio, resolution string) *geometry.ExportGeometry {
	return geometry.CalculateExportImageSize(a.presets, mapWidth, mapHeight,
		geometry.RatioID(ratio), geometry.ResolutionID(resolution))
}

// GetOverlayScale converts on-screen overlay coordinates into export-image
// coordinates.
func (a *App) GetOverlayScale(imageWidth, imageHeight, mapWidth, mapHeight int) float64 {
	return geometry.ScaleFromImageSize(imageWidth, imageHeight, mapWidth, mapHeight)
}

// GetExportPresets enumerates ratio and resolution presets for the UI.
func (a *App) GetExportPresets() ExportPresets {
	presets := ExportPresets{}
	for _, p := range a.presets.Ratios() {
		presets.Ratios = append(presets.Ratios, PresetInfo{ID: string(p.ID()), Label: p.Label()})
	}
	for _, p := range a.presets.Resolutions() {
		presets.Resolutions = append(presets.Resolutions, PresetInfo{ID: string(p.ID()), Label: p.Label()})
	}
	return presets
}

// ExportImage delivers the captured map preview as a raster image download.
func (a *App) ExportImage() (*ExportResult, error) {
	payload, err := export.ImagePayload(a.snapshot())
	if err != nil {
		a.trackExportFailed("image", err)
		return nil, err
	}
	if payload == nil {
		a.emitLog("No captured preview to export")
		return &ExportResult{}, nil
	}
	return a.deliverAll("image", payload)
}

// ExportConfig delivers the saved-map document: full state with dataset rows
// when hasFullData is set, map configuration only otherwise.
func (a *App) ExportConfig(hasFullData bool) (*ExportResult, error) {
	payload, err := export.ConfigPayload(a.snapshot(), hasFullData)
	if err != nil {
		a.trackExportFailed("config", err)
		return nil, err
	}
	return a.deliverAll("config", payload)
}

// ExportStandalone delivers a single self-contained interactive HTML
// document. The request's Mapbox token overrides the settings token only
// when it is non-empty.
func (a *App) ExportStandalone(req ExportRequest) (*ExportResult, error) {
	payload, err := export.StandalonePayload(a.snapshot(), export.StandaloneOptions{
		UserToken:     req.UserMapboxToken,
		FallbackToken: a.settings.MapboxToken,
		Mode:          req.Mode,
	})
	if err != nil {
		a.trackExportFailed("html", err)
		return nil, err
	}
	return a.deliverAll("html", payload)
}

// ExportData delivers one tabular payload per selected dataset. Zero
// payloads means nothing matched the selection; that is a no-op, not an
// error.
func (a *App) ExportData(req ExportRequest) (*ExportResult, error) {
	dataType, err := exporters.ParseDataType(req.DataType)
	if err != nil {
		a.trackExportFailed("data", err)
		return nil, err
	}

	payloads, err := export.DataPayloads(a.snapshot(), export.DataOptions{
		SelectedDataset: req.SelectedDataset,
		DataType:        dataType,
		Filtered:        req.Filtered,
	})
	if err != nil {
		a.trackExportFailed("data", err)
		return nil, err
	}
	if len(payloads) == 0 {
		a.emitLog("No datasets to export")
		return &ExportResult{}, nil
	}
	return a.deliverAll("data", payloads...)
}

// MapBundleResult is the programmatic export: serialized map, metadata and
// thumbnail, returned to the caller instead of written to a sink.
type MapBundleResult struct {
	SerializedMap json.RawMessage  `json:"serializedMap"`
	MapInfo       mapstate.MapInfo `json:"mapInfo"`
	Thumbnail     string           `json:"thumbnail,omitempty"`
}

// ExportMapBundle returns the map bundle without delivering anything.
func (a *App) ExportMapBundle() (*MapBundleResult, error) {
	bundle, err := export.MapBundle(a.snapshot())
	if err != nil {
		a.trackExportFailed("bundle", err)
		return nil, err
	}

	result := &MapBundleResult{
		SerializedMap: bundle.SerializedMap,
		MapInfo:       bundle.Info,
	}
	if bundle.Thumbnail != nil {
		result.Thumbnail = datauri.Encode(bundle.Thumbnail.MimeType, bundle.Thumbnail.Bytes)
	}
	return result, nil
}

// deliverAll hands each payload to the delivery sink, then reports the
// outcome to the frontend and analytics.
func (a *App) deliverAll(kind string, payloads ...*exporters.NamedPayload) (*ExportResult, error) {
	if a.sink == nil {
		return nil, fmt.Errorf("download directory unavailable")
	}

	result := &ExportResult{}
	var totalBytes int
	for _, payload := range payloads {
		path, err := a.sink.Deliver(payload.Bytes, payload.MimeType, payload.Filename)
		if err != nil {
			a.trackExportFailed(kind, err)
			return nil, fmt.Errorf("failed to deliver %s: %w", payload.Filename, err)
		}
		a.emitLog(fmt.Sprintf("Saved: %s", path))
		result.Exported++
		result.Files = append(result.Files, path)
		totalBytes += len(payload.Bytes)
	}

	a.TrackEvent("export_complete", map[string]interface{}{
		"kind":  kind,
		"count": result.Exported,
		"bytes": totalBytes,
	})
	wailsRuntime.EventsEmit(a.ctx, "export-complete", result)

	if a.settings.AutoOpenDownloadDir && result.Exported > 0 {
		if err := a.OpenDownloadFolder(); err != nil {
			log.Printf("Failed to open download folder: %v", err)
		}
	}

	return result, nil
}

// trackExportFailed records a failed export in analytics.
func (a *App) trackExportFailed(kind string, err error) {
	log.Printf("[Export] %s export failed: %v", kind, err)
	a.TrackEvent("export_failed", map[string]interface{}{
		"kind":  kind,
		"error": err.Error(),
	})
}

// OpenDownloadFolder opens the download folder in the system file manager
func (a *App) OpenDownloadFolder() error {
	var cmd *exec.Cmd
	switch goruntime.GOOS {
	case "darwin":
		cmd = exec.Command("open", a.settings.DownloadPath)
	case "windows":
		cmd = exec.Command("explorer", a.settings.DownloadPath)
	default: // Linux and others
		cmd = exec.Command("xdg-open", a.settings.DownloadPath)
	}
	return cmd.Start()
}
