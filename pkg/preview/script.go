package preview

// clientScript connects to /ws, forwards DOM events by data-rid and swaps in
// the HTML the server pushes back.
const clientScript = `
(function () {
  'use strict';

  var ws = null;
  var delay = 500;

  function rid(el) {
    for (; el && el.getAttribute; el = el.parentNode) {
      var id = el.getAttribute('data-rid');
      if (id) return Number(id);
    }
    return 0;
  }

  function send(msg) {
    if (ws && ws.readyState === WebSocket.OPEN) ws.send(JSON.stringify(msg));
  }

  function connect() {
    var proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
    ws = new WebSocket(proto + '//' + location.host + '/ws');
    ws.onopen = function () {
      delay = 500;
      if (location.hash) send({type: 'navigate', path: location.hash});
    };
    ws.onmessage = function (e) {
      var msg = JSON.parse(e.data);
      if (msg.type === 'html') {
        document.body.innerHTML = msg.html;
        if (msg.focus) {
          var el = document.querySelector('[data-rid="' + msg.focus + '"]');
          if (el) el.focus();
        }
      } else if (msg.type === 'error') {
        console.warn('[ripple] ' + msg.code + ': ' + msg.error);
      }
    };
    ws.onclose = function () {
      setTimeout(connect, delay);
      delay = Math.min(delay * 2, 10000);
    };
  }

  ['click', 'input', 'change', 'keydown'].forEach(function (type) {
    document.addEventListener(type, function (e) {
      var id = rid(e.target);
      if (!id) return;
      send({
        type: 'event',
        node: id,
        event: type,
        value: e.target.value || '',
        checked: !!e.target.checked,
        key: e.key || ''
      });
    }, true);
  });

  window.addEventListener('hashchange', function () {
    send({type: 'navigate', path: location.hash});
  });

  connect();
})();
`
