// Package catalog is the static registry of downloadable project resources.
// The set is fixed at process start; lookups are read-only and stable.
package catalog

import (
	"strings"

	"github.com/spectropro/spectro-backend/internal/models"
)

type Category string

const (
	CategoryThesis Category = "thesis"
	CategoryGUI    Category = "gui"
	CategoryData   Category = "data"
	CategorySource Category = "source"
	CategoryImages Category = "images"
)

type File struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Filename    string   `json:"filename"`
	Category    Category `json:"category"`
	FileType    string   `json:"file_type"`
	Size        string   `json:"size"`
	Path        string   `json:"-"`
	IsProtected bool     `json:"is_protected"`

	// RequiredRole is only meaningful when IsProtected is set; empty means no
	// role requirement.
	RequiredRole models.Role `json:"required_role,omitempty"`
}

type CategoryInfo struct {
	Key         Category `json:"key"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
}

var categories = []CategoryInfo{
	{CategoryThesis, "Thesis Documents", "Complete research documentation and abstracts"},
	{CategoryGUI, "GUI Screenshots", "Interface screenshots and mockups"},
	{CategoryData, "Sample Data", "Research data and calibration files"},
	{CategorySource, "Source Code", "Application and firmware source code"},
	{CategoryImages, "Project Images", "Hardware photos and diagrams"},
}

var files = []File{
	{
		ID:          "thesis-complete",
		Title:       "Complete Thesis PDF",
		Description: "Full dissertation document with all chapters and appendices",
		Filename:    "Automated_Spectrophotometer_Thesis_2025.pdf",
		Category:    CategoryThesis,
		FileType:    "pdf",
		Size:        "2.4 MB",
		Path:        "documents/thesis/Automated_Spectrophotometer_Thesis_2025.pdf",
	},
	{
		ID:          "thesis-abstract",
		Title:       "Research Abstract",
		Description: "Executive summary and key findings",
		Filename:    "Research_Abstract_2025.pdf",
		Category:    CategoryThesis,
		FileType:    "pdf",
		Size:        "156 KB",
		Path:        "documents/thesis/Research_Abstract_2025.pdf",
	},
	{
		ID:          "gui-main-interface",
		Title:       "Main Interface Screenshot",
		Description: "Complete GUI overview showing all components",
		Filename:    "GUI_Main_Interface_v2.png",
		Category:    CategoryGUI,
		FileType:    "png",
		Size:        "1.2 MB",
		Path:        "images/gui/GUI_Main_Interface_v2.png",
	},
	{
		ID:          "gui-live-plotting",
		Title:       "Live Plotting Interface",
		Description: "Real-time data visualization interface",
		Filename:    "GUI_Live_Plotting_v2.png",
		Category:    CategoryGUI,
		FileType:    "png",
		Size:        "890 KB",
		Path:        "images/gui/GUI_Live_Plotting_v2.png",
	},
	{
		ID:          "gui-metrics-panel",
		Title:       "Metrics Panel",
		Description: "Live calculations and statistics display",
		Filename:    "GUI_Metrics_Panel_v2.png",
		Category:    CategoryGUI,
		FileType:    "png",
		Size:        "654 KB",
		Path:        "images/gui/GUI_Metrics_Panel_v2.png",
	},
	{
		ID:          "sample-spectral-data",
		Title:       "Sample Spectral Data",
		Description: "Representative measurement data from the spectrophotometer",
		Filename:    "Sample_Spectral_Data_2025.csv",
		Category:    CategoryData,
		FileType:    "csv",
		Size:        "45 KB",
		Path:        "data/spectral/Sample_Spectral_Data_2025.csv",
	},
	{
		ID:           "calibration-data",
		Title:        "Calibration Data",
		Description:  "System calibration measurements and reference standards",
		Filename:     "Calibration_Data_2025.csv",
		Category:     CategoryData,
		FileType:     "csv",
		Size:         "28 KB",
		Path:         "data/calibration/Calibration_Data_2025.csv",
		IsProtected:  true,
		RequiredRole: models.RoleResearcher,
	},
	{
		ID:           "frontend-source",
		Title:        "Frontend Source Code",
		Description:  "Complete web application source code",
		Filename:     "SpectroPro_Frontend_Source_v2.zip",
		Category:     CategorySource,
		FileType:     "zip",
		Size:         "2.1 MB",
		Path:         "source/frontend/SpectroPro_Frontend_Source_v2.zip",
		IsProtected:  true,
		RequiredRole: models.RoleResearcher,
	},
	{
		ID:           "firmware-source",
		Title:        "STM32 Firmware",
		Description:  "Microcontroller firmware implementation",
		Filename:     "STM32_Spectrophotometer_Firmware_v1.zip",
		Category:     CategorySource,
		FileType:     "zip",
		Size:         "85 KB",
		Path:         "source/firmware/STM32_Spectrophotometer_Firmware_v1.zip",
		IsProtected:  true,
		RequiredRole: models.RoleResearcher,
	},
	{
		ID:          "hardware-setup",
		Title:       "Hardware Setup Photo",
		Description: "Complete spectrophotometer hardware assembly",
		Filename:    "Hardware_Setup_2025.jpg",
		Category:    CategoryImages,
		FileType:    "jpg",
		Size:        "3.2 MB",
		Path:        "images/hardware/Hardware_Setup_2025.jpg",
	},
}

// GetByID returns the file for id, or ok=false when unknown.
func GetByID(id string) (File, bool) {
	for _, f := range files {
		if f.ID == id {
			return f, true
		}
	}
	return File{}, false
}

// ListByCategory returns the files of a category in declaration order.
// The catalog never changes at runtime, so repeated calls yield the same
// sequence.
func ListByCategory(c Category) []File {
	var out []File
	for _, f := range files {
		if f.Category == c {
			out = append(out, f)
		}
	}
	return out
}

// All returns every file in declaration order.
func All() []File {
	out := make([]File, len(files))
	copy(out, files)
	return out
}

func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(categories))
	copy(out, categories)
	return out
}

var mimeTypes = map[string]string{
	"pdf":  "application/pdf",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"csv":  "text/csv",
	"zip":  "application/zip",
	"txt":  "text/plain",
}

// MimeTypeFor maps a file type to its content type; unknown types fall back
// to a generic binary type.
func MimeTypeFor(fileType string) string {
	if mt, ok := mimeTypes[strings.ToLower(fileType)]; ok {
		return mt
	}
	return "application/octet-stream"
}
