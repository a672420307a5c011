package server

import "github.com/MoosaTae/license-plate-ocr/internal/plate"

// detectionView is one detection prepared for the results page
type detectionView struct {
	Index      int
	Text       string
	Confidence string
	Status     string
	Pass       bool
	Reason     string
	Match      *plate.Record
	MatchType  string
	MatchScore string
}

// pageData feeds the index template
type pageData struct {
	ConfidenceThreshold float64
	RegistrySize        int
	ProvinceCount       int
	Stats               plate.Statistics

	HasResults  bool
	Method      string
	ResultImage string
	Detections  []detectionView
	PassedCount int
	TotalCount  int
	SuccessRate string
}

const pageHTML = `<!DOCTYPE html>
<html lang="th">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>License Plate OCR</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 900px; margin: 0 auto; padding: 20px; background-color: #f5f5f5; }
        .container { background: white; padding: 30px; border-radius: 10px; box-shadow: 0 0 10px rgba(0,0,0,0.1); }
        h1 { color: #333; text-align: center; }
        .upload-form { text-align: center; margin: 30px 0; padding: 20px; border: 2px dashed #ccc; border-radius: 10px; }
        .upload-form input[type="submit"] { background-color: #007bff; color: white; padding: 10px 20px; border: none; border-radius: 5px; cursor: pointer; }
        .upload-form input[type="submit"]:hover { background-color: #0056b3; }
        .image-result { text-align: center; margin: 20px 0; }
        .image-result img { max-width: 100%; height: auto; border: 1px solid #ddd; border-radius: 5px; }
        .detection-item { background: #f8f9fa; padding: 15px; margin: 10px 0; border-radius: 5px; }
        .pass { border-left: 5px solid #28a745; }
        .fail { border-left: 5px solid #dc3545; }
        .status-pass { color: #28a745; font-weight: bold; }
        .status-fail { color: #dc3545; font-weight: bold; }
        .database-match { background: #e8f5e9; padding: 10px; margin: 10px 0; border-radius: 3px; }
        .stats { background: #f0f0f0; padding: 15px; margin: 20px 0; border-radius: 5px; }
        code { background: #e9ecef; padding: 2px 4px; border-radius: 3px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>License Plate OCR System</h1>

        <div>
            <p><strong>Confidence Threshold:</strong> {{ .ConfidenceThreshold }}</p>
            <p><strong>Province Database:</strong> {{ .ProvinceCount }} Thai provinces loaded</p>
            <p><strong>Plate Registry:</strong> {{ .RegistrySize }} records loaded</p>
        </div>

        <form class="upload-form" method="post" enctype="multipart/form-data">
            <h3>Upload License Plate Image</h3>
            <input type="file" name="image" accept="image/*" required>
            <br><br>
            <input type="submit" value="Analyze License Plate">
        </form>

        {{ if .HasResults }}
        <div class="results">
            <div class="image-result">
                <h3>OCR Results</h3>
                <img src="data:image/jpeg;base64,{{ .ResultImage }}" alt="OCR Result">
            </div>

            <h3>Analysis Report</h3>
            <p><strong>Method Used:</strong> <code>{{ .Method }}</code></p>
            <p><strong>Total Detections:</strong> {{ .TotalCount }}</p>

            {{ range .Detections }}
            <div class="detection-item {{ if .Pass }}pass{{ else }}fail{{ end }}">
                <h4>Detection #{{ .Index }}</h4>
                <p><strong>Text:</strong> <code>{{ .Text }}</code></p>
                <p><strong>Confidence:</strong> <code>{{ .Confidence }}</code></p>
                <p><strong>Status:</strong> <span class="{{ if .Pass }}status-pass{{ else }}status-fail{{ end }}">{{ .Status }}</span></p>
                <p><strong>Reason:</strong> {{ .Reason }}</p>
                {{ if .Match }}
                <div class="database-match">
                    <strong>Database Record:</strong><br>
                    <strong>Plate:</strong> {{ .Match.PlateNumber }}<br>
                    <strong>Province:</strong> {{ .Match.Province }}<br>
                    <strong>Vehicle Type:</strong> {{ .Match.VehicleType }}<br>
                    <strong>Status:</strong> {{ .Match.Status }}<br>
                    <strong>Match:</strong> {{ .MatchType }} ({{ .MatchScore }})
                </div>
                {{ end }}
            </div>
            {{ end }}

            <div class="stats">
                <h3>Summary</h3>
                <p><strong>Passed Validation:</strong> {{ .PassedCount }}/{{ .TotalCount }}</p>
                {{ if .SuccessRate }}<p><strong>Success Rate:</strong> {{ .SuccessRate }}%</p>{{ end }}
            </div>
        </div>
        {{ end }}

        <div class="stats">
            <h3>Registry Statistics</h3>
            <p><strong>Total Plates:</strong> {{ .Stats.Total }}</p>
            <p><strong>By Province:</strong>
                {{ range $province, $count := .Stats.ByProvince }}{{ $province }} ({{ $count }}) {{ end }}
            </p>
            <p><strong>By Vehicle Type:</strong>
                {{ range $type, $count := .Stats.ByVehicleType }}{{ $type }} ({{ $count }}) {{ end }}
            </p>
            <p><strong>By Status:</strong>
                {{ range $status, $count := .Stats.ByStatus }}{{ $status }} ({{ $count }}) {{ end }}
            </p>
        </div>
    </div>
</body>
</html>
`
