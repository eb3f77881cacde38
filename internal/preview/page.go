package preview

// previewScript is the polling client injected into the served page: a
// fixed toolbar with zoom and marker controls, a marker layer drawn
// over the page container, and a reload when the server reports a newer
// render. Offsets arrive in unscaled content pixels; the layer lives
// inside the scaled container, so the browser applies the zoom.
const previewScript = `(function () {
  'use strict';
  var POLL_MS = 700;
  var zoom = 1;
  var markers = true;
  var lastRenderedAt = 0;

  var page = document.querySelector('.cv-page') || document.body;
  page.style.position = 'relative';
  page.style.transformOrigin = 'top center';

  var layer = document.createElement('div');
  layer.style.cssText = 'position:absolute;inset:0;pointer-events:none;';
  page.appendChild(layer);

  var bar = document.createElement('div');
  bar.style.cssText = 'position:fixed;top:10px;right:10px;z-index:1000;' +
    'background:#1f2937;color:#f9fafb;padding:8px 12px;border-radius:8px;' +
    'font:12px/1.4 system-ui,sans-serif;display:flex;gap:10px;align-items:center;' +
    'box-shadow:0 2px 8px rgba(0,0,0,.25);';
  bar.innerHTML =
    '<span id="cv-preview-pages">measuring</span>' +
    '<label style="display:flex;gap:4px;align-items:center;">' +
    '<input id="cv-preview-markers" type="checkbox" checked> breaks</label>' +
    '<button id="cv-preview-out" type="button">&minus;</button>' +
    '<span id="cv-preview-zoom">100%</span>' +
    '<button id="cv-preview-in" type="button">+</button>';
  document.body.appendChild(bar);

  var pagesEl = document.getElementById('cv-preview-pages');
  var zoomEl = document.getElementById('cv-preview-zoom');

  function setZoom(z) {
    zoom = Math.round(Math.min(2, Math.max(0.5, z)) * 10) / 10;
    page.style.transform = zoom === 1 ? '' : 'scale(' + zoom + ')';
    zoomEl.textContent = Math.round(zoom * 100) + '%';
  }
  document.getElementById('cv-preview-in').addEventListener('click', function () { setZoom(zoom + 0.1); });
  document.getElementById('cv-preview-out').addEventListener('click', function () { setZoom(zoom - 0.1); });
  document.getElementById('cv-preview-markers').addEventListener('change', function (e) {
    markers = e.target.checked;
    if (!markers) draw([]);
  });

  function draw(offsets) {
    layer.textContent = '';
    if (!markers) return;
    for (var i = 0; i < offsets.length; i++) {
      var m = document.createElement('div');
      m.style.cssText = 'position:absolute;left:0;right:0;top:' + offsets[i] +
        'px;border-top:1px dashed #ef4444;';
      var tag = document.createElement('span');
      tag.textContent = 'page ' + (i + 2);
      tag.style.cssText = 'position:absolute;right:4px;top:-9px;background:#ef4444;' +
        'color:#fff;font:10px/1.6 system-ui,sans-serif;padding:0 6px;border-radius:7px;';
      m.appendChild(tag);
      layer.appendChild(m);
    }
  }

  function poll() {
    fetch('/api/pagination?zoom=' + zoom + '&markers=' + (markers ? 1 : 0))
      .then(function (res) { return res.json(); })
      .then(function (data) {
        if (lastRenderedAt && data.renderedAt && data.renderedAt !== lastRenderedAt) {
          location.reload();
          return;
        }
        if (data.renderedAt) lastRenderedAt = data.renderedAt;
        if (data.error) {
          pagesEl.textContent = 'render error';
          pagesEl.title = data.error;
          return;
        }
        pagesEl.title = '';
        if (data.state === 'settled' && data.pageCount > 0) {
          pagesEl.textContent = data.pageCount + (data.pageCount === 1 ? ' page' : ' pages');
        } else {
          pagesEl.textContent = 'measuring';
        }
        draw(data.offsets || []);
      })
      .catch(function () { pagesEl.textContent = 'offline'; });
  }

  setInterval(poll, POLL_MS);
  poll();
})();`
