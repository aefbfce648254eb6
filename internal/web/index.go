package web

import (
	"html/template"
	"net/http"

	"citygrowth/internal/core"
	"citygrowth/internal/sims/city"
)

type slider struct {
	core.ParameterControl
	Value string
}

type indexData struct {
	Session string
	Title   string
	Size    int
	Seed    int64
	Sliders []slider
}

func (s *Server) indexData() indexData {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := city.Snapshot(s.cfg, nil)
	controls := city.PanelControls()
	sliders := make([]slider, 0, len(controls))
	for _, c := range controls {
		p, _ := snap.Lookup(c.Key)
		sliders = append(sliders, slider{ParameterControl: c, Value: p.Value})
	}
	return indexData{
		Session: s.id.String(),
		Title:   s.title,
		Size:    s.cfg.Size,
		Seed:    s.cfg.Seed,
		Sliders: sliders,
	}
}

// serveIndex renders the control panel page.
func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, s.indexData()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>City growth</title>
<style>
body { font-family: sans-serif; margin: 1.5em; background: #f4f4f0; }
#panel { float: left; width: 18em; }
#panel label { display: block; margin-top: 0.6em; }
#panel input[type=range] { width: 100%; }
#view { margin-left: 20em; }
#metrics td { padding: 0 0.6em; }
canvas { border: 1px solid #999; image-rendering: pixelated; }
</style>
</head>
<body>
<div id="panel">
  <h2>Control panel</h2>
  <div>Session <code id="session">{{.Session}}</code></div>
  <label>Size <input id="size" type="number" min="1" value="{{.Size}}"></label>
  <label>Seed <input id="seed" type="number" value="{{.Seed}}"></label>
  {{range .Sliders}}
  <label>{{.Label}} <span id="{{.Key}}-value">{{.Value}}</span>
    <input type="range" id="{{.Key}}" data-type="{{.Type}}" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{.Value}}">
  </label>
  {{end}}
  <p>
    <button id="run">Run</button>
    <button id="reset">Reset</button>
    <button id="restart">New session</button>
  </p>
  <p><a href="/api/session/surface" target="_blank">3D surface</a> | <a href="/api/session/heatmap.png" target="_blank">Heatmap</a></p>
</div>
<div id="view">
  <h2 id="title">{{.Title}}</h2>
  <canvas id="grid" width="400" height="400"></canvas>
  <table id="metrics">
    <tr><td>Materials</td><td id="material"></td></tr>
    <tr><td>Demand</td><td id="demand"></td></tr>
    <tr><td>Pollution</td><td id="pollution"></td></tr>
    <tr><td>Mean height</td><td id="mean"></td></tr>
  </table>
  <p id="status"></p>
</div>
<script>
const sliders = document.querySelectorAll("input[type=range]");
sliders.forEach(el => el.addEventListener("input", () => {
  document.getElementById(el.id + "-value").textContent = el.value;
}));

function config() {
  const params = {};
  sliders.forEach(el => {
    params[el.id] = el.dataset.type === "int" ? parseInt(el.value, 10) : parseFloat(el.value);
  });
  return {
    size: parseInt(document.getElementById("size").value, 10),
    seed: parseInt(document.getElementById("seed").value, 10),
    params: params,
  };
}

async function post(path, body) {
  const resp = await fetch(path, {method: "POST", body: body ? JSON.stringify(body) : ""});
  const data = await resp.json();
  if (!resp.ok) {
    document.getElementById("status").textContent = data.error;
    return null;
  }
  document.getElementById("status").textContent = "";
  return data;
}

function draw(frame) {
  document.getElementById("session").textContent = frame.session;
  document.getElementById("title").textContent = frame.title;
  const m = frame.metrics;
  document.getElementById("material").textContent = m.material;
  document.getElementById("demand").textContent = m.demand;
  document.getElementById("pollution").textContent = m.pollution;
  document.getElementById("mean").textContent = m.mean_height.toFixed(2);
  if (frame.exhausted) {
    document.getElementById("status").textContent = "Materials exhausted at step " + frame.stopped_at;
  }
  const canvas = document.getElementById("grid");
  const ctx = canvas.getContext("2d");
  const n = frame.heights.length;
  if (n === 0) { return; }
  const cell = canvas.width / n;
  let top = 1;
  frame.heights.forEach(row => row.forEach(h => { top = Math.max(top, h); }));
  frame.heights.forEach((row, r) => row.forEach((h, c) => {
    const v = Math.round(255 * h / top);
    ctx.fillStyle = "rgb(" + v + "," + Math.round(v * 0.8) + "," + (255 - v) + ")";
    ctx.fillRect(c * cell, r * cell, cell, cell);
  }));
}

document.getElementById("run").onclick = () => post("/api/session/run", config());
document.getElementById("reset").onclick = async () => {
  const cfg = config();
  const st = await post("/api/session/reset", cfg);
  if (st) { document.getElementById("seed").value = st.config.seed; }
};
document.getElementById("restart").onclick = async () => {
  await post("/api/session/restart");
  location.reload();
};

const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.onmessage = evt => draw(JSON.parse(evt.data));
</script>
</body>
</html>
`))
