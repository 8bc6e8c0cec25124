package web

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"time"

	"github.com/sweeney/langlights/internal/led"
	"github.com/sweeney/langlights/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"swatch": func(c led.Color) template.CSS {
		return template.CSS("background:" + c.Hex())
	},
	"stateClass": func(s string) string {
		switch s {
		case "CONNECTED":
			return "connected"
		case "SLEEPING":
			return "sleeping"
		default:
			return "disconnected"
		}
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="5">
<title>langlights</title>
<style>
body { font-family: monospace; max-width: 640px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.strip { display: flex; gap: 2px; margin: 1em 0; }
.unit { width: 14px; height: 14px; border-radius: 50%; border: 1px solid #ccc; }
.screen { background: #111; color: #eee; padding: 6px 10px; white-space: pre; }
.connected { color: green; }
.disconnected { color: red; }
.sleeping { color: orange; }
.overflow { font-weight: bold; }
</style>
</head>
<body>
<h1>langlights</h1>

<div class="strip" id="strip">{{range .Frame}}<span class="unit" style="{{swatch .}}"></span>{{end}}</div>

<h2>Languages</h2>
<table>
<tr><th>Code</th><td>Users / LEDs</td></tr>
{{range .Result.Records}}<tr><th>{{.Code}}</th><td{{if .Overflowed}} class="overflow"{{end}}>{{.RawCount}} / {{.Units}}{{if .Overflowed}} (halved){{end}}</td></tr>
{{end}}<tr><th>Total</th><td>{{.Result.TotalRawCount}}{{if .Result.Truncated}} (clipped){{end}}</td></tr>
</table>

<h2>Screen</h2>
<div class="screen">{{range .Lines}}{{.}}
{{end}}</div>

<h2>Connectivity</h2>
<table>
<tr><th>Feed</th><td class="{{stateClass (printf "%s" .State)}}">{{.State}}</td></tr>
<tr><th>Server</th><td>{{.Config.Server}}:{{.Config.Port}}</td></tr>
<tr><th>Disconnects</th><td>{{.Disconnects}} / {{.Config.DisconnectThreshold}}</td></tr>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{if .Config.Broker}}{{.Config.Broker}}{{else}}off{{end}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Session</th><td>{{.Session}}</td></tr>
<tr><th>Brightness</th><td>level {{.Level}} ({{.Brightness}})</td></tr>
<tr><th>Frames</th><td>{{.Frames}}</td></tr>
<tr><th>Decode errors</th><td>{{.DecodeErrors}}</td></tr>
<tr><th>Heartbeat</th><td>{{.Config.HeartbeatMs}}ms</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	if err := indexTmpl.Execute(w, data); err != nil {
		log.Printf("web: render index: %v", err)
	}
}
