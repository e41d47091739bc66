package scaffold

// loginPageTemplate is the generated hosting entry page. The apiKey, appId
// and messagingSenderId values are deliberate placeholders.
const loginPageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>__PROJECT_ID__ - Sign In</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
      display: flex;
      align-items: center;
      justify-content: center;
      min-height: 100vh;
      margin: 0;
      background: #f5f5f5;
    }
    .card {
      background: #fff;
      border-radius: 8px;
      box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);
      padding: 2.5rem;
      text-align: center;
      max-width: 360px;
      width: 100%;
    }
    h1 { font-size: 1.4rem; margin: 0 0 0.5rem; }
    p { color: #666; margin: 0 0 1.5rem; }
    button {
      background: #4285f4;
      border: none;
      border-radius: 4px;
      color: #fff;
      cursor: pointer;
      font-size: 1rem;
      padding: 0.75rem 1.5rem;
      width: 100%;
    }
    button:hover { background: #3367d6; }
    #status { color: #333; margin-top: 1rem; min-height: 1.2rem; }
  </style>
</head>
<body>
  <div class="card">
    <h1>Digital Workshop Hub</h1>
    <p>Sign in to continue</p>
    <button id="signin">Sign in with Google</button>
    <div id="status"></div>
  </div>

  <script src="https://www.gstatic.com/firebasejs/10.12.0/firebase-app-compat.js"></script>
  <script src="https://www.gstatic.com/firebasejs/10.12.0/firebase-auth-compat.js"></script>
  <script>
    // Placeholder web app config: replace apiKey, messagingSenderId and appId
    // with the values from the Firebase console before deploying.
    const firebaseConfig = {
      apiKey: "YOUR_API_KEY",
      authDomain: "__PROJECT_ID__.firebaseapp.com",
      projectId: "__PROJECT_ID__",
      storageBucket: "__PROJECT_ID__.appspot.com",
      messagingSenderId: "000000000000",
      appId: "YOUR_APP_ID"
    };

    firebase.initializeApp(firebaseConfig);

    const status = document.getElementById("status");

    document.getElementById("signin").addEventListener("click", async () => {
      const provider = new firebase.auth.GoogleAuthProvider();
      try {
        const result = await firebase.auth().signInWithPopup(provider);
        status.textContent = "Signed in as " + result.user.email;
      } catch (err) {
        status.textContent = "Sign-in failed: " + err.message;
      }
    });

    firebase.auth().onAuthStateChanged((user) => {
      if (user) {
        status.textContent = "Signed in as " + user.email;
      }
    });
  </script>
</body>
</html>
`
