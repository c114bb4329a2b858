package checkout

// NavigationMessage is the message URLListenerScript posts on every
// in-page navigation.
const NavigationMessage = "navigationStateChange"

// URLListenerScript is injected into the hosted page. Single-page
// navigations (history API, back/forward, hash routes) do not always reach
// the native navigation callback, so the script reports them through the
// native message bridge as well. Native attaches the page URL to the message.
const URLListenerScript = `(function () {
  if (window.__checkoutUrlListener) {
    return;
  }
  window.__checkoutUrlListener = true;

  function notify() {
    var bridge = window.CheckoutBridge;
    if (bridge && bridge.postMessage) {
      bridge.postMessage('` + NavigationMessage + `');
    }
  }

  ['pushState', 'replaceState'].forEach(function (name) {
    var original = history[name];
    history[name] = function () {
      var result = original.apply(this, arguments);
      notify();
      return result;
    };
  });

  window.addEventListener('popstate', notify);
  window.addEventListener('hashchange', notify);
})();
true;
`
