package web

// Plain vault table fed by the SSE run stream. Newest run per chain wins.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>vaultlens</title>
  <style>
    :root {
      --bg:#ffffff;
      --ink:#111111;
      --ink-mid:#4d4d4d;
      --ink-soft:#9c9c9c;
      --panel:#f6f6f6;
      --grid:rgba(0,0,0,0.1);
    }
    body { font-family: "Space Mono", monospace; background: var(--bg); color: var(--ink); margin: 2rem; }
    h1 { font-size: 1.2rem; letter-spacing: 0.1em; }
    table { border-collapse: collapse; width: 100%; margin-top: 1rem; }
    th, td { border-bottom: 1px solid var(--grid); padding: 0.4rem 0.6rem; text-align: right; font-size: 0.85rem; }
    th { color: var(--ink-mid); text-transform: uppercase; font-size: 0.7rem; }
    td.sym, th.sym { text-align: left; }
    .muted { color: var(--ink-soft); }
    #status { color: var(--ink-soft); font-size: 0.75rem; }
  </style>
</head>
<body>
  <h1>VAULTLENS</h1>
  <div id="status">connecting…</div>
  <table>
    <thead>
      <tr>
        <th class="sym">Vault</th>
        <th class="sym">Assets</th>
        <th>TVL $</th>
        <th>APR %</th>
        <th>APY %</th>
        <th>Daily %</th>
        <th>vs HOLD %</th>
        <th>IL</th>
      </tr>
    </thead>
    <tbody id="rows"></tbody>
  </table>
  <script>
    const runs = {};

    function render() {
      const rows = [];
      for (const chain of Object.keys(runs)) {
        for (const v of runs[chain].vaults || []) {
          rows.push(v);
        }
      }
      rows.sort((a, b) => Number(b.earningData.apr.withFees.latest) - Number(a.earningData.apr.withFees.latest));

      const body = document.getElementById("rows");
      body.innerHTML = "";
      for (const v of rows) {
        const tr = document.createElement("tr");
        const assets = (v.resolvedAssets || []).map(a => a.symbol || "?").join("+");
        const vsHold = v.isVsHoldActive ? v.vsHold.currentWindowProrated : "—";
        tr.innerHTML =
          '<td class="sym">' + (v.symbol || v.address) + "</td>" +
          '<td class="sym">' + assets + ' <span class="muted">' + (v.assetsProportions || []).join("/") + "</span></td>" +
          "<td>" + Number(v.totalAssetsUsd).toFixed(0) + "</td>" +
          "<td>" + v.earningData.apr.withFees.latest + "</td>" +
          "<td>" + v.earningData.apy.withFees.latest + "</td>" +
          "<td>" + v.dailySimpleApr + "</td>" +
          "<td>" + vsHold + "</td>" +
          "<td>" + v.impermanentLossRisk + "</td>";
        body.appendChild(tr);
      }
    }

    const source = new EventSource("/vaults/stream");
    source.addEventListener("run", (e) => {
      const run = JSON.parse(e.data);
      runs[run.chainId] = run;
      document.getElementById("status").textContent =
        "last run " + run.runId.slice(0, 8) + " @ " + run.ts;
      render();
    });
    source.onerror = () => {
      document.getElementById("status").textContent = "stream disconnected, retrying…";
    };
  </script>
</body>
</html>
`
